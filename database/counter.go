package database

import (
	"fmt"

	"github.com/google/uuid"
)

type counter struct {
	id    int
	maxid int
}

// NewGameId mints the public id for a new table.
func (db *DB) NewGameId() string {
	return uuid.NewString()
}

// NewGuestId mints the next "G<n>" identity id.
func (db *DB) NewGuestId() (string, error) {
	n, err := db.getCounter("guest", 10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("G%d", n), nil
}

// getCounter hands out the next value of a named counter, reserving a
// block per trip to the database so bursts of new guests don't each
// pay a round trip.
func (db *DB) getCounter(name string, reserve int) (id int, err error) {
	db.counterMux.Lock()
	defer func() { db.counterMux.Unlock() }()

	c, ok := db.counters[name]
	if ok && c.id < c.maxid {
		id = c.id
		c.id++
		return
	}
	if !ok {
		c = &counter{id: 0, maxid: 0}
		db.counters[name] = c
	}

	var v int
	row := db.c.QueryRow(db.c.Rebind(
		`INSERT INTO counters (name, v) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET v = counters.v + excluded.v
		 RETURNING v`), name, reserve)
	if err = row.Scan(&v); err != nil {
		db.errorf("Error advancing counter '%s': %s", name, err)
		return
	}

	id = v - reserve + 1
	c.id = id + 1
	c.maxid = v
	return
}
