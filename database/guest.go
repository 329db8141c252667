package database

import (
	"database/sql"
	"time"

	"local/islanders/simple"
)

// StoreGuest records a freshly minted guest identity.
func (db *DB) StoreGuest(i simple.Identity) error {
	_, err := db.exec(
		`INSERT INTO guests (id, name, created) VALUES (?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		i.Id, i.Name, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetIdentity resolves a cookie id back to the identity we issued it
// to.  Unknown ids fail: the caller should mint a fresh guest.
func (db *DB) GetIdentity(id string) (simple.Identity, bool) {
	var name string
	err := db.c.QueryRow(db.c.Rebind(
		`SELECT name FROM guests WHERE id = ?`), id).Scan(&name)
	if err == sql.ErrNoRows {
		return simple.EmptyIdentity, false
	}
	if err != nil {
		db.errorf("GetIdentity(%s): %s", id, err)
		return simple.EmptyIdentity, false
	}
	if len(id) > 0 && id[0] == 'G' {
		return simple.NewGuestIdentity(id), true
	}
	return simple.EmptyIdentity, false
}
