package server

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"

	"local/islanders/client"
	"local/islanders/database"
	"local/islanders/lobby"
	"local/islanders/log"
	"local/islanders/message"
	"local/islanders/simple"
)

type Server struct {
	config      simple.Config
	upgrader    websocket.Upgrader
	db          *database.DB
	lobby       *lobby.Lobby
	broadcaster *Broadcaster
	ip          simple.IpChecker
	started     time.Time
}

func New(config simple.Config) *Server {
	log.Info("New: running")
	initDone := make(chan struct{}, 100)

	db := database.New(config)
	err := db.Run(initDone)
	if err != nil {
		log.Stop("server New panic", err)
		panic(err)
	}

	broadcaster := NewBroadcaster()
	ip := NewIpChecker()

	lb := lobby.New(config, db, ip)
	go lb.Run(initDone)
	broadcaster.lobby = lb

	log.Info("New: Waiting for initDone on created resources")
	for i := 0; i < 2; i++ {
		<-initDone
	}
	log.Info("New: Done")

	return &Server{
		config:      config,
		upgrader:    websocket.Upgrader{},
		db:          db,
		lobby:       lb,
		broadcaster: broadcaster,
		ip:          ip,
		started:     time.Now(),
	}
}

func (s *Server) Run() {
	r := mux.NewRouter()
	r.Use(authNClosure(s.db, s.config))
	if s.config.Name != "prod" {
		r.Use(blockIps(s.config))
	}
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, r)
	})
	http.Handle("/", r)

	addr := fmt.Sprintf("0.0.0.0:%d", s.config.ServerPort)
	log.Debug("Listening on %s", addr)
	log.Fatal("ListenAndServe return: %s", http.ListenAndServe(addr, nil))
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if p[0] != '/' {
		s.clientError(w, "URL Path doesn't begin with '/': %s", p)
		return
	}
	pe := strings.Split(p, "/")
	pe = pe[1:]
	if pe[0] == "" {
		s.clientError(w, "URL Path has no routes: %s", p)
		return
	}
	switch pe[0] {
	case "ws":
		s.handleWs(w, r, pe)
	case "a":
		s.handleAdmin(w, pe, r)
	default:
		s.clientError(w, "URL Path has no routes: %s", p)
	}
}

// If this goroutine (for the web request) panics, we will terminate
// the websocket.  For that reason, this goroutine should register the
// websocket in some other component and perhaps send an initial
// message, but then complete quickly.
func (s *Server) handleWs(w http.ResponseWriter, r *http.Request, pe []string) {
	pe = pe[1:]

	// Identity should be set in our AuthN handler.
	rawIdentity := r.Context().Value("Identity")
	if rawIdentity == nil {
		s.clientError(w, "No Identity in handler")
		return
	}
	identity, ok := s.castIdentity(rawIdentity)
	if !ok {
		s.clientError(w, "'Identity' in Context not a simple.Identity")
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.clientError(w, "Can't upgrade websocket: %s", err)
		return
	}
	c := client.NewWebClient(identity, ws, s.ip, getIP(r))
	// We only report error if we are in panic
	defer func() {
		if r := recover(); r != nil {
			s.cServerError(c, fmt.Sprintf("Panic in websocket goroutine: %s\n%s",
				r,
				string(debug.Stack())))
		}
	}()
	go c.Run()

	if len(pe) == 0 {
		s.sendIdentity(c, identity)
		s.handleLobby(c)
		return
	}

	switch pe[0] {
	case "lobby":
		s.sendIdentity(c, identity)
		s.handleLobby(c)
	case "g":
		s.sendIdentity(c, identity)
		s.handleGame(c, pe)
	default:
		s.wsClientError(ws, "URL Path has no routes: %s", pe)
	}
}

func (s *Server) sendIdentity(c client.Client, i simple.Identity) {
	c.Send(message.NewYourIdentity(i))
}

func (s *Server) handleLobby(c *client.WebClient) {
	s.lobby.Register(c)
}

func (s *Server) handleGame(c *client.WebClient, pe []string) {
	if len(pe) == 1 {
		s.cServerError(c, "URL Path has no routes: %s", pe)
		return
	}
	s.lobby.RegisterGame(c, pe[1])
}

func (s *Server) handleAdmin(w http.ResponseWriter, pe []string, r *http.Request) {
	pe = pe[1:]

	if len(pe) == 0 {
		log.Error("Admin function called with no route (raw '/a')")
		s.adminError(w)
		return
	}

	switch pe[0] {
	case "hotdeploy":
		s.handleHotDeploy(w)
	case "stats":
		s.handleStats(w)
	case "qr":
		s.handleQr(w, pe)
	default:
		log.Error("URL Path has no routes: /a/%s", pe)
		s.adminError(w)
	}
}

func (s *Server) handleHotDeploy(w http.ResponseWriter) {
	log.Info("HotDeploy admin request received (/a/hotdeploy)")
	m := message.NewNotifyNotification(
		message.NotificationInfo,
		"Islanders Update",
		"Islanders will update after this turn.  Expected update time is 15 seconds.  Stay here to be reseated automatically.")
	s.broadcaster.Broadcast(message.Broadcast{Id: "", M: m})

	log.Fatal("Hotdeploy prepared: Shutting down.")
	s.adminSuccess(w)
	log.Stop("HotDeploy", nil)
	os.Exit(0)
}

func (s *Server) handleStats(w http.ResponseWriter) {
	stats, err := s.db.GetStats()
	if err != nil {
		log.Error("Stats: %s", err)
		s.adminError(w)
		return
	}
	fmt.Fprintf(w, "up since:       %s\n", humanize.Time(s.started))
	fmt.Fprintf(w, "games finished: %s\n", humanize.Comma(int64(stats.GamesFinished)))
	fmt.Fprintf(w, "guests issued:  %s\n", humanize.Comma(int64(stats.GuestsIssued)))
}

// handleQr renders a join-link QR code for a game, for passing a table
// around a room full of phones.
func (s *Server) handleQr(w http.ResponseWriter, pe []string) {
	if len(pe) < 2 || pe[1] == "" {
		s.adminError(w)
		return
	}
	url := fmt.Sprintf("https://%s/g/%s", s.config.ServerDNS, pe[1])
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		log.Error("QR encode for %s: %s", url, err)
		s.adminError(w)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func getIP(r *http.Request) string {
	forwarded := r.Header.Get("X-FORWARDED-FOR")
	if forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}

func (s *Server) castIdentity(raw interface{}) (i simple.Identity, b bool) {
	b = true
	defer func() {
		if r := recover(); r != nil {
			b = false
		}
	}()
	i = raw.(simple.Identity)
	return i, b
}

func (s *Server) clientError(w http.ResponseWriter, m string, fs ...interface{}) {
	m = fmt.Sprintf("(ClientError) %s", m)
	log.Info(m, fs...)
	http.Error(w, m, 400)
}

func (s *Server) adminSuccess(w http.ResponseWriter) {
	w.Write([]byte("OK"))
}

func (s *Server) adminError(w http.ResponseWriter) {
	http.Error(w, "FAIL", 400)
}

func (s *Server) wsClientError(ws *websocket.Conn, m string, f ...interface{}) {
	m = fmt.Sprintf(fmt.Sprintf("(ClientError) %s", m), f...)
	log.Info(m)

	// We don't care about errors, we are closing anyway.
	_ = ws.WriteMessage(websocket.TextMessage, []byte(m))
	ws.Close()
}

func (s *Server) cServerError(client *client.WebClient, e string, fargs ...interface{}) {
	log.Error(e, fargs...)
	m := message.NewInternalError("Internal Error")
	client.Send(m)
}
