package lobby

import (
	"fmt"
	"reflect"
	"time"

	"local/islanders/client"
	"local/islanders/crypto"
	"local/islanders/database"
	"local/islanders/game"
	"local/islanders/log"
	"local/islanders/message"
	"local/islanders/simple"
)

type GameJoin struct {
	C *client.WebClient
	G string
}

type Lobby struct {
	Config       simple.Config
	db           *database.DB
	ip           simple.IpChecker
	clients      map[simple.Identity]*client.MultiWebClient
	pushTicker   *time.Ticker
	join         chan *client.WebClient
	gamejoin     chan GameJoin
	broadcast    chan message.Broadcast
	cleanupGames chan string

	// The primary thing we are a lobby for.
	games []*game.Game

	summary message.Server
}

func New(config simple.Config, db *database.DB, ip simple.IpChecker) *Lobby {
	r := &Lobby{
		Config:       config,
		db:           db,
		ip:           ip,
		clients:      map[simple.Identity]*client.MultiWebClient{},
		pushTicker:   time.NewTicker(5 * time.Second),
		join:         make(chan *client.WebClient, 10),
		gamejoin:     make(chan GameJoin, 10),
		broadcast:    make(chan message.Broadcast, 10),
		cleanupGames: make(chan string),
		games:        []*game.Game{},
	}
	r.refreshSummary()
	return r
}

// Call with its own goroutine to start.
func (l *Lobby) Run(initDone chan struct{}) {
	defer l.panicking()
	l.debugf("Lobby running")
	l.refreshSummary()
	initDone <- struct{}{}
	for {
		l.handleMsg()
	}
}

func (l *Lobby) Register(c *client.WebClient) {
	l.join <- c
}

func (l *Lobby) RegisterGame(c *client.WebClient, id string) {
	l.gamejoin <- GameJoin{c, id}
}

func (l *Lobby) Broadcast(b message.Broadcast) {
	l.broadcast <- b
}

func (l *Lobby) handleMsg() {
	rcase := func(c reflect.Value) reflect.SelectCase {
		return reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: c,
		}
	}

	cases := []reflect.SelectCase{}
	cases = append(cases, rcase(reflect.ValueOf(l.pushTicker.C)))
	cases = append(cases, rcase(reflect.ValueOf(l.join)))
	cases = append(cases, rcase(reflect.ValueOf(l.gamejoin)))
	cases = append(cases, rcase(reflect.ValueOf(l.broadcast)))
	cases = append(cases, rcase(reflect.ValueOf(l.cleanupGames)))

	order := []simple.Identity{}
	for i, c := range l.clients {
		order = append(order, i)
		cases = append(cases, rcase(reflect.ValueOf(c.Read())))
	}

	chosen, value, ok := reflect.Select(cases)

	switch chosen {
	case 0:
		l.handleTick()
	case 1:
		l.handleJoin(value.Interface().(*client.WebClient))
	case 2:
		l.handleGameJoin(value.Interface().(GameJoin))
	case 3:
		l.handleBroadcast(value.Interface().(message.Broadcast))
	case 4:
		l.handleCleanup(value.Interface().(string))
	default:
		i := order[chosen-5]
		if !ok {
			l.handleLeave(i)
		} else {
			c := l.clients[i]
			m := value.Interface().(message.Client)
			switch ty := m.CType; ty {
			case message.CreateGame:
				l.handleCreateGame(c, m.Data.(message.CreateGameData))
			default:
				l.clientError(c, "Client Error", "CType '%s' unhandled by Lobby",
					message.CTypeNames[m.CType])
			}
		}
	}
}

func (l *Lobby) handleJoin(c *client.WebClient) {
	c.Send(l.summary)
	if mc, ok := l.clients[c.Identity()]; ok {
		mc.Consume(c)
	} else {
		l.clients[c.Identity()] = client.NewMultiWebClient(c)
		go l.clients[c.Identity()].Run()
	}
}

func (l *Lobby) handleGameJoin(j GameJoin) {
	for _, g := range l.games {
		if g.Id == j.G {
			g.Register(j.C)
			return
		}
	}
	l.debugf("GameJoin for unknown game %s, parking %s in the lobby", j.G, j.C.Identity().Id)
	j.C.Send(message.NewNotifyNotification(message.NotificationError,
		"Unknown Game", "That game no longer exists"))
	l.handleJoin(j.C)
}

func (l *Lobby) handleBroadcast(b message.Broadcast) {
	if b.Id == "" {
		for _, c := range l.clients {
			c.Send(b.M)
		}
	} else {
		for i, c := range l.clients {
			if b.Id == i.Id {
				c.Send(b.M)
				break
			}
		}
	}
	for _, g := range l.games {
		g.Broadcast(b)
	}
}

func (l *Lobby) handleLeave(i simple.Identity) {
	delete(l.clients, i)
}

func (l *Lobby) handleTick() {
	l.refreshSummary()
	l.notify(l.summary)
}

func (l *Lobby) handleCleanup(id string) {
	l.debugf("handleCleanup for game %s", id)
	for i, g := range l.games {
		if g.Id == id {
			l.games = append(l.games[:i], l.games[i+1:]...)
			break
		}
	}
}

func (l *Lobby) handleCreateGame(c client.Client, d message.CreateGameData) {
	l.debugf("Create Game (%s)", c.Identity().Id)

	opts := simple.DefaultOptions()
	opts.MaxPlayers = l.Config.MaxPlayers
	opts.VPTarget = l.Config.VPTarget
	if d.MaxPlayers >= 2 && d.MaxPlayers <= 6 {
		opts.MaxPlayers = d.MaxPlayers
	}
	if d.VPTarget >= 3 && d.VPTarget <= 20 {
		opts.VPTarget = d.VPTarget
	}
	opts.SeaBoard = d.SeaBoard
	opts.ClothVillages = d.SeaBoard && d.ClothVillages

	passwordHash := ""
	if d.Password != "" {
		passwordHash = crypto.HashPassword(d.Password)
	}

	id := l.db.NewGameId()
	g := game.New(id, c.Identity(), opts, passwordHash, l.Config, l.db, l.ip)
	l.games = append([]*game.Game{g}, l.games...)

	initDone := make(chan struct{})
	go func() {
		g.Run(initDone)
		l.cleanupGames <- id
	}()
	<-initDone
	c.Send(message.NewNotifyCreateGame(id))
	l.refreshSummary()
}

func (l *Lobby) refreshSummary() {
	summaries := []message.GameSummary{}
	for _, g := range l.games {
		summaries = append(summaries, g.GetSummary())
	}

	p := 0
	o := len(l.clients)
	for _, s := range summaries {
		o += s.Observers
		for _, i := range s.Players {
			if i.Type == simple.IdentityTypeConnection || i.Type == simple.IdentityTypeGuest {
				p++
			}
		}
	}
	l.summary = message.NewNotifyLobby(p, o, summaries)
}

func (l *Lobby) panicking() {
	if r := recover(); r != nil {
		log.Stop("Lobby panic", r)
		panic(r)
	}
}

func (l *Lobby) clientError(c client.Client, header string, content string, fargs ...interface{}) {
	content = fmt.Sprintf(content, fargs...)
	l.debugf("(ClientError) (%s) %s: %s", c.Identity().Id, header, content)
	c.Send(message.NewNotifyNotification(message.NotificationError, header, content))
}

func (l *Lobby) notify(m message.Server) {
	for _, p := range l.clients {
		p.Send(m)
	}
}

func (l *Lobby) debugf(msg string, fargs ...interface{}) {
	log.Debug(fmt.Sprintf("(Lobby) %s", msg), fargs...)
}

func (l *Lobby) infof(msg string, fargs ...interface{}) {
	log.Info(fmt.Sprintf("(Lobby) %s", msg), fargs...)
}

func (l *Lobby) errorf(msg string, fargs ...interface{}) {
	log.Error(fmt.Sprintf("(Lobby) %s", msg), fargs...)
}
