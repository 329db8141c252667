package server

import (
	"net/http"

	"local/islanders/log"
	"local/islanders/simple"
)

// Non-prod stacks only answer the operator's own address.
func blockIps(config simple.Config) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIP(r)
			path := r.URL.Path
			myip := string(config.ConfigKeys["myip"])
			if myip != "" && ip != myip && (len(path) < 3 || path[0:3] != "/a/") {
				log.Debug("Access: BlockedIP %s (%s)", ip, path)
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("403"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
