package database

import (
	"time"

	"golang.org/x/xerrors"

	"local/islanders/simple"
)

// GameResult is the permanent record of one finished game.
type GameResult struct {
	Id       string
	Created  time.Time
	Started  time.Time
	Finished time.Time
	Winner   int
	Rounds   int
	Players  []PlayerResult
}

type PlayerResult struct {
	Seat     int
	Identity simple.Identity
	Color    simple.PlayerColor
	Score    int
	Knights  int
}

func (db *DB) StoreResult(r GameResult) error {
	tx, err := db.c.Beginx()
	if err != nil {
		return xerrors.Errorf("StoreResult begin: %w", err)
	}
	defer tx.Rollback()

	ts := func(t time.Time) string { return t.UTC().Format(time.RFC3339) }
	_, err = tx.Exec(db.c.Rebind(
		`INSERT INTO results (id, created, started, finished, winner, rounds)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		r.Id, ts(r.Created), ts(r.Started), ts(r.Finished), r.Winner, r.Rounds)
	if err != nil {
		return xerrors.Errorf("StoreResult game row: %w", err)
	}

	for _, p := range r.Players {
		_, err = tx.Exec(db.c.Rebind(
			`INSERT INTO result_players
			 (game_id, seat, identity_id, identity_name, color, score, knights)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`),
			r.Id, p.Seat, p.Identity.Id, p.Identity.Name, int(p.Color), p.Score, p.Knights)
		if err != nil {
			return xerrors.Errorf("StoreResult player row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return xerrors.Errorf("StoreResult commit: %w", err)
	}
	db.debugf("Stored result for game %s", r.Id)
	return nil
}

// RecentResults lists up to n finished games, newest first.
func (db *DB) RecentResults(n int) ([]GameResult, error) {
	type resultRow struct {
		Id       string `db:"id"`
		Created  string `db:"created"`
		Started  string `db:"started"`
		Finished string `db:"finished"`
		Winner   int    `db:"winner"`
		Rounds   int    `db:"rounds"`
	}
	rows := []resultRow{}
	err := db.c.Select(&rows, db.c.Rebind(
		`SELECT id, created, started, finished, winner, rounds
		 FROM results ORDER BY finished DESC LIMIT ?`), n)
	if err != nil {
		return nil, xerrors.Errorf("RecentResults: %w", err)
	}

	results := []GameResult{}
	for _, row := range rows {
		r := GameResult{
			Id:     row.Id,
			Winner: row.Winner,
			Rounds: row.Rounds,
		}
		r.Created, _ = time.Parse(time.RFC3339, row.Created)
		r.Started, _ = time.Parse(time.RFC3339, row.Started)
		r.Finished, _ = time.Parse(time.RFC3339, row.Finished)

		type playerRow struct {
			Seat         int    `db:"seat"`
			IdentityId   string `db:"identity_id"`
			IdentityName string `db:"identity_name"`
			Color        int    `db:"color"`
			Score        int    `db:"score"`
			Knights      int    `db:"knights"`
		}
		prows := []playerRow{}
		err = db.c.Select(&prows, db.c.Rebind(
			`SELECT seat, identity_id, identity_name, color, score, knights
			 FROM result_players WHERE game_id = ? ORDER BY seat`), row.Id)
		if err != nil {
			return nil, xerrors.Errorf("RecentResults players: %w", err)
		}
		for _, pr := range prows {
			r.Players = append(r.Players, PlayerResult{
				Seat:     pr.Seat,
				Identity: simple.Identity{Id: pr.IdentityId, Name: pr.IdentityName, Type: simple.IdentityTypeGuest},
				Color:    simple.PlayerColor(pr.Color),
				Score:    pr.Score,
				Knights:  pr.Knights,
			})
		}
		results = append(results, r)
	}
	return results, nil
}

// Stats for the /a/stats endpoint.
type Stats struct {
	GamesFinished int
	GuestsIssued  int
}

func (db *DB) GetStats() (Stats, error) {
	s := Stats{}
	if err := db.c.Get(&s.GamesFinished, `SELECT COUNT(*) FROM results`); err != nil {
		return s, xerrors.Errorf("GetStats results: %w", err)
	}
	if err := db.c.Get(&s.GuestsIssued, `SELECT COUNT(*) FROM guests`); err != nil {
		return s, xerrors.Errorf("GetStats guests: %w", err)
	}
	return s, nil
}
