package server

import (
	"context"
	"net/http"

	"local/islanders/crypto"
	"local/islanders/database"
	"local/islanders/log"
	"local/islanders/simple"
)

// Every visitor gets a guest identity.  A valid cookie maps back to
// the guest we minted for it; no cookie or a stale one mints a fresh
// guest and sets a new cookie on the way through.
func authNClosure(db *database.DB, config simple.Config) func(http.Handler) http.Handler {
	cookieName := "IslandersAuthN"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIP(r)
			path := r.URL.Path

			// Path /a is blocked at the nginx level from calls off
			// this box.  This is a crontab calling in to perform some
			// timed maintenance.
			if len(path) >= 2 && path[0:2] == "/a" {
				next.ServeHTTP(w, r)
				return
			}

			cookie := ""
			for _, c := range r.Cookies() {
				if c.Name == cookieName {
					cookie = c.Value
				}
			}

			var identity simple.Identity
			found := false
			if cookie != "" {
				if id, ok := crypto.ReadCookie(cookie, ip, path, config); ok {
					identity, found = db.GetIdentity(id)
				}
			}

			if !found {
				id, err := db.NewGuestId()
				if err != nil {
					log.Error("Access: cannot mint guest for %s (%s): %s", ip, path, err)
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("InternalError minting identity"))
					return
				}
				identity = simple.NewGuestIdentity(id)
				if err := db.StoreGuest(identity); err != nil {
					log.Error("Access: cannot store guest %s: %s", id, err)
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("InternalError storing identity"))
					return
				}
				http.SetCookie(w, crypto.NewCookie(id, config))
				log.Debug("Access: NewGuest %s %s (%s)", id, ip, path)
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(),
				"Identity", identity,
			)))
		})
	}
}
