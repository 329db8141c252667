package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"reflect"
	"sync"
	"time"

	"local/islanders/client"
	"local/islanders/crypto"
	"local/islanders/database"
	"local/islanders/log"
	"local/islanders/message"
	"local/islanders/simple"
)

// TimeoutType is delivered by the turn timer.  Epoch lets the loop
// drop timers armed for turns that already ended.
type TimeoutType struct {
	Epoch int
}

type Game struct {

	// Immutable fields
	Id      string
	Creator simple.Identity
	Opts    simple.GameOptions

	db  *database.DB
	cfg simple.Config
	ip  simple.IpChecker

	// The way that other components talk to us
	joins     chan client.Client
	broadcast chan message.Broadcast
	timeouts  chan TimeoutType

	// The way users talk to us.  During Creating, clients is all
	// EmptyClients and everyone is an observer.  Once we transition,
	// each occupied seat gets its MultiWebClient.
	observers   map[simple.Identity]*client.MultiWebClient
	clients     []client.Client // by seat
	disconnects map[int]bool

	// Argon2id encoded join password; empty means open table.
	passwordHash string

	// Lifecycle
	status     Status
	newStatus  Status
	times      GameTimes
	everJoined bool
	summaryMux sync.Mutex
	summary    message.GameSummary

	// The rules engine holds all in-game state.
	engine    *Engine
	turnEpoch int
}

type GameTimes struct {
	create   time.Time
	running  time.Time
	complete time.Time
}

func New(id string, creator simple.Identity, opts simple.GameOptions, passwordHash string,
	cfg simple.Config, db *database.DB, ip simple.IpChecker) *Game {
	g := &Game{
		Id:           id,
		Creator:      creator,
		Opts:         opts,
		db:           db,
		cfg:          cfg,
		ip:           ip,
		joins:        make(chan client.Client, 2),
		broadcast:    make(chan message.Broadcast, 10),
		timeouts:     make(chan TimeoutType, 4),
		observers:    map[simple.Identity]*client.MultiWebClient{},
		disconnects:  map[int]bool{},
		passwordHash: passwordHash,
		status:       Creating,
		newStatus:    Creating,
		times:        GameTimes{create: time.Now()},
		summaryMux:   sync.Mutex{},
		engine:       NewEngine(opts, rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	for i := 0; i < g.engine.SeatCount(); i++ {
		g.clients = append(g.clients, client.EmptyClient{})
	}
	g.updateSummary()
	return g
}

func (g *Game) Run(initDone chan struct{}) {
	defer g.panicking()
	g.updateSummary()
	initDone <- struct{}{}

	for g.handleMsg() {
		g.checkStatus()
		g.updateSummary()
	}
	g.checkStatus()
	g.updateSummary()
}

func (g *Game) Register(c client.Client) {
	g.joins <- c
}

func (g *Game) Broadcast(b message.Broadcast) {
	g.broadcast <- b
}

func (g *Game) GetSummary() message.GameSummary {
	g.summaryMux.Lock()
	defer func() { g.summaryMux.Unlock() }()
	return g.summary
}

func (g *Game) updateSummary() {
	g.summaryMux.Lock()
	defer func() { g.summaryMux.Unlock() }()

	is := []simple.Identity{}
	cs := []simple.PlayerColor{}
	ss := []int{}
	for seat := 0; seat < g.engine.SeatCount(); seat++ {
		p := g.engine.Player(seat)
		if p == nil {
			is = append(is, simple.EmptyIdentity)
			cs = append(cs, simple.NonePlayerColor)
			ss = append(ss, 0)
			continue
		}
		is = append(is, p.Identity)
		cs = append(cs, p.Color)
		ss = append(ss, g.engine.PublicVPForSeat(seat))
	}

	g.summary = message.GameSummary{
		Id:           g.Id,
		RunningTime:  g.times.running,
		CompleteTime: g.times.complete,
		Status:       int(g.status),
		Creator:      g.Creator,
		Players:      is,
		Colors:       cs,
		Scores:       ss,
		Observers:    len(g.observers),
		HasPassword:  g.passwordHash != "",
	}
}

// Returns false if this game is over (Abandoned, Complete) and there
// is nobody left to talk to.
func (g *Game) handleMsg() bool {
	rcase := func(c reflect.Value) reflect.SelectCase {
		return reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: c,
		}
	}

	obOrder := []simple.Identity{}
	cases := []reflect.SelectCase{
		rcase(reflect.ValueOf(g.joins)),
		rcase(reflect.ValueOf(g.timeouts)),
		rcase(reflect.ValueOf(g.broadcast)),
	}
	for seat, c := range g.clients {
		if v, ok := g.disconnects[seat]; ok && v {
			c = client.EmptyClient{}
		}
		cases = append(cases, rcase(reflect.ValueOf(c.Read())))
	}
	for i, o := range g.observers {
		obOrder = append(obOrder, i)
		cases = append(cases, rcase(reflect.ValueOf(o.Read())))
	}

	// A closed channel here means that the player/observer has 0 open
	// connections to the table.
	chosen, value, ok := reflect.Select(cases)
	if chosen == 0 {
		if !ok {
			panic("g.joins should never be closed!")
		}
		g.handleJoin(value.Interface().(*client.WebClient))
	} else if chosen == 1 {
		if !ok {
			panic("g.timeouts should never be closed!")
		}
		g.handleTimeout(value.Interface().(TimeoutType))
	} else if chosen == 2 {
		if !ok {
			panic("g.broadcast should never be closed!")
		}
		g.handleBroadcast(value.Interface().(message.Broadcast))
	} else if chosen-3 < len(g.clients) {
		seat := chosen - 3
		if !ok {
			g.debugf("Seat %d (%s) disconnected", seat, g.clients[seat].Identity().Id)
			g.disconnects[seat] = true
		} else {
			g.handlePlayerMsg(seat, value.Interface().(message.Client))
		}
	} else {
		i := obOrder[(chosen-3)-len(g.clients)]
		if !ok {
			delete(g.observers, i)
		} else {
			g.handleObserverMsg(g.observers[i], value.Interface().(message.Client))
		}
	}

	// An empty Creating table that somebody once visited is dead.
	if g.status == Creating && g.everJoined && len(g.observers) == 0 {
		g.newStatus = Abandoned
		return false
	}

	if g.status != Abandoned && g.status != Complete || len(g.observers) > 0 {
		return true
	}
	for seat, c := range g.clients {
		if _, ok := c.(client.EmptyClient); ok {
			continue
		}
		if v, ok := g.disconnects[seat]; !ok || !v {
			return true
		}
	}
	return false
}

func (g *Game) handleJoin(c *client.WebClient) {
	g.debugf("HandleJoin %s", c.Identity().Id)
	g.everJoined = true

	viewer := -1
	if seat := g.seatOf(c.Identity()); seat >= 0 {
		viewer = seat
	}
	c.Send(message.NewNotifyFullGame(int(g.status), g.Creator, g.engine.SnapshotFor(viewer)))

	// Look for this identity as a player or an observer.
	if mc, ok := g.observers[c.Identity()]; ok {
		g.debugf("Already an observer, consuming new ws: %s", c.Identity().Id)
		mc.Consume(c)
		return
	}
	if viewer >= 0 && g.status != Creating {
		g.debugf("Already a player, consuming new ws: %s", c.Identity().Id)
		g.clients[viewer].(*client.MultiWebClient).Consume(c)
		delete(g.disconnects, viewer)
		return
	}

	g.debugf("New Observer: %s", c.Identity().Id)
	mc := client.NewMultiWebClient(c)
	go mc.Run()
	g.observers[c.Identity()] = mc
}

func (g *Game) handleTimeout(tt TimeoutType) {
	if tt.Epoch != g.turnEpoch {
		return
	}
	if g.status != Running || g.engine.State() == StateOver {
		return
	}
	seat := g.engine.CurrentPlayer()
	g.infof("Turn timer fired, forcing end of seat %d's turn", seat)
	if err := g.engine.ForceEndTurn(); err != nil {
		g.errorf("ForceEndTurn: %s", err)
		return
	}
	g.notify(message.NewNotifyNotification(message.NotificationWarn, "Turn Forced",
		fmt.Sprintf("Seat %d ran out of time", seat)))
	g.afterAction()
}

func (g *Game) handleBroadcast(b message.Broadcast) {
	if b.Id == "" {
		g.notify(b.M)
		return
	}
	for seat, c := range g.clients {
		if g.disconnects[seat] {
			continue
		}
		if c.Identity().Id == b.Id {
			c.Send(b.M)
		}
	}
	for i, o := range g.observers {
		if i.Id == b.Id {
			o.Send(b.M)
		}
	}
}

func (g *Game) handlePlayerMsg(seat int, m message.Client) {
	c := g.clients[seat]
	switch ty := m.CType; ty {
	case message.RequestSitdown:
		g.handleRequestSitdown(c, m.Data.(message.RequestSitdownData))
	case message.StartGame:
		g.handleStartGame(c, m.Data.(message.StartGameData))
	default:
		g.handleGameMsg(seat, c, m)
	}
}

func (g *Game) handleObserverMsg(o *client.MultiWebClient, m message.Client) {
	switch ty := m.CType; ty {
	case message.RequestSitdown:
		g.handleRequestSitdown(o, m.Data.(message.RequestSitdownData))
	case message.StartGame:
		g.handleStartGame(o, m.Data.(message.StartGameData))
	default:
		g.clientError(o, "Client Error", "CType '%s' unhandled by Game (observer)",
			message.CTypeNames[m.CType])
	}
}

func (g *Game) handleRequestSitdown(c client.Client, d message.RequestSitdownData) {
	if g.status != Creating {
		g.clientError(c, "Sitdown Error", "You can only sit or stand while a game is 'Creating'")
		return
	}

	mySeat := g.seatOf(c.Identity())
	if d.Sitdown {
		if mySeat >= 0 {
			g.clientError(c, "Sitdown Error", "You are already sitting at this game")
			return
		}
		if g.passwordHash != "" && !crypto.VerifyPassword(g.passwordHash, d.Password) {
			g.clientError(c, "Sitdown Error", "Wrong table password")
			return
		}
		if d.Color == simple.NonePlayerColor {
			g.clientError(c, "Sitdown Error", "Pick a color first")
			return
		}
		for seat := 0; seat < g.engine.SeatCount(); seat++ {
			if p := g.engine.Player(seat); p != nil && p.Color == d.Color {
				g.clientError(c, "Sitdown Error", "%s is already taken by %s",
					d.Color, p.Identity.Name)
				return
			}
		}
		if g.ip != nil {
			if other, ok := g.ip.Use("g-"+g.Id, c.Identity()); !ok {
				g.clientError(c, "Sitdown Error",
					"Someone at your address (%s) is already seated here", other.Name)
				return
			}
		}
		if err := g.engine.Sit(d.Seat, c.Identity(), d.Color); err != nil {
			if g.ip != nil {
				g.ip.DoneUse("g-"+g.Id, c.Identity())
			}
			g.clientError(c, "Sitdown Error", "%s", err)
			return
		}
		g.debugf("(%s) Sat down at seat %d", c.Identity().Id, d.Seat)
		g.notify(message.NewNotifySitdown(c.Identity(), d.Seat, d.Color, true))
		return
	}

	if mySeat < 0 || mySeat != d.Seat {
		g.clientError(c, "Sitdown Error", "You are not sitting there")
		return
	}
	color := g.engine.Player(mySeat).Color
	if err := g.engine.Stand(mySeat); err != nil {
		g.clientError(c, "Sitdown Error", "%s", err)
		return
	}
	if g.ip != nil {
		g.ip.DoneUse("g-"+g.Id, c.Identity())
	}
	g.debugf("(%s) Stood up from seat %d", c.Identity().Id, mySeat)
	g.notify(message.NewNotifySitdown(c.Identity(), mySeat, color, false))
}

func (g *Game) handleStartGame(c client.Client, d message.StartGameData) {
	if g.status != Creating {
		g.clientError(c, "StartGame Error", "Can only start when game is 'Creating'")
		return
	}
	if c.Identity() != g.Creator {
		g.clientError(c, "StartGame Error", "Only the Creator (%s) can start the game",
			g.Creator.Name)
		return
	}
	if err := g.engine.Start(); err != nil {
		g.clientError(c, "StartGame Error", "%s", err)
		return
	}
	g.debugf("Starting Game")
	g.newStatus = Running
}

// handleGameMsg routes an in-game action to the rules engine.  Either
// the engine rejects it and the sender alone hears about it, or it
// mutates state and everybody gets fresh snapshots.
func (g *Game) handleGameMsg(seat int, c client.Client, m message.Client) {
	if g.status != Running {
		g.clientError(c, "Game Error", "The game is not running")
		return
	}

	var err error
	switch ty := m.CType; ty {
	case message.RollDice:
		var roll int
		roll, err = g.engine.RollDice(seat)
		if err == nil {
			g.notify(message.NewNotifyDiceRoll(seat, roll))
		}
	case message.BuildRequest:
		d := m.Data.(message.BuildRequestData)
		err = g.engine.BuildRequest(seat, d.Piece)
	case message.PutPiece:
		d := m.Data.(message.PutPieceData)
		err = g.engine.PutPiece(seat, d.Piece, d.Coord)
	case message.CancelBuild:
		err = g.engine.CancelBuild(seat)
	case message.ChooseRobberOrPirate:
		d := m.Data.(message.ChooseRobberOrPirateData)
		err = g.engine.ChooseRobberOrPirate(seat, d.Pirate)
	case message.MoveRobber:
		d := m.Data.(message.MoveRobberData)
		var victim int
		var stolen simple.Resource
		victim, stolen, err = g.engine.MoveRobber(seat, d.Hex)
		if err == nil && victim >= 0 {
			g.notifyRobbery(seat, victim, stolen)
		}
	case message.MovePirate:
		d := m.Data.(message.MovePirateData)
		var victim int
		var stolen simple.Resource
		victim, stolen, err = g.engine.MovePirate(seat, d.Hex)
		if err == nil && victim >= 0 {
			g.notifyRobbery(seat, victim, stolen)
		}
	case message.ChooseVictim:
		d := m.Data.(message.ChooseVictimData)
		var stolen simple.Resource
		stolen, err = g.engine.ChooseVictim(seat, d.Seat)
		if err == nil && g.engine.State() != StateWaitingForRobClothOrResource {
			g.notifyRobbery(seat, d.Seat, stolen)
		}
	case message.RobClothOrResource:
		d := m.Data.(message.RobClothOrResourceData)
		var victim int
		var stolen simple.Resource
		victim, stolen, err = g.engine.RobClothOrResource(seat, d.StealCloth)
		if err == nil && victim >= 0 {
			g.notifyRobbery(seat, victim, stolen)
		}
	case message.Discard:
		d := m.Data.(message.DiscardData)
		err = g.engine.Discard(seat, d.Cards)
	case message.PickGold:
		d := m.Data.(message.PickGoldData)
		err = g.engine.PickGold(seat, d.Picks)
	case message.BuyDevCard:
		_, err = g.engine.BuyDevCard(seat)
	case message.PlayDevCard:
		d := m.Data.(message.PlayDevCardData)
		err = g.engine.PlayDevCard(seat, d.Card)
	case message.PickDiscovery:
		d := m.Data.(message.PickDiscoveryData)
		err = g.engine.PickDiscovery(seat, d.Picks)
	case message.PickMonopoly:
		d := m.Data.(message.PickMonopolyData)
		_, err = g.engine.PickMonopoly(seat, d.Resource)
	case message.OfferTrade:
		d := m.Data.(message.OfferTradeData)
		err = g.engine.OfferTrade(seat, d.Give, d.Get, d.To)
		if err == nil {
			g.notify(message.NewNotifyTradeOffer(seat, d.Give, d.Get, d.To))
		}
	case message.AcceptTrade:
		from := -1
		if o := g.engine.CurrentOffer(); o != nil {
			from = o.From
		}
		err = g.engine.AcceptTrade(seat)
		if err == nil {
			g.notify(message.NewNotifyTradeAnswer(from, seat, true))
		}
	case message.RejectTrade:
		from := -1
		if o := g.engine.CurrentOffer(); o != nil {
			from = o.From
		}
		err = g.engine.RejectTrade(seat)
		if err == nil {
			g.notify(message.NewNotifyTradeAnswer(from, seat, false))
		}
	case message.BankTrade:
		d := m.Data.(message.BankTradeData)
		err = g.engine.BankTrade(seat, d.Give, d.Get)
	case message.EndTurn:
		err = g.engine.EndTurn(seat)
	case message.AskSpecialBuild:
		err = g.engine.AskSpecialBuild(seat)
	case message.RequestReset:
		err = g.engine.RequestReset(seat)
		if err == nil {
			g.notify(message.NewNotifyResetVote(seat, seat, true, false, false))
		}
	case message.VoteReset:
		d := m.Data.(message.VoteResetData)
		var done, passed bool
		done, passed, err = g.engine.VoteReset(seat, d.Yes)
		if err == nil {
			g.notify(message.NewNotifyResetVote(-1, seat, d.Yes, done, passed))
			if done && passed {
				g.infof("Board reset vote passed, dealing a new board")
				g.engine = g.engine.ResetAsCopy()
				if err := g.engine.Start(); err != nil {
					g.errorf("Restart after reset failed: %s", err)
				} else {
					g.notify(message.NewNotifyStartGame(g.engine.CurrentPlayer()))
				}
			}
		}
	default:
		g.clientError(c, "Client Error", "CType '%s' unhandled by Game (player)",
			message.CTypeNames[m.CType])
		return
	}

	if err != nil {
		g.clientError(c, "Action Error", "%s", err)
		return
	}
	g.afterAction()
}

// afterAction runs after every successful engine mutation: push
// per-viewer snapshots, notice the game ending, and re-arm the turn
// timer.
func (g *Game) afterAction() {
	if g.engine.State() == StateOver && g.status == Running {
		g.newStatus = Complete
	}
	g.notifySnapshots()
	g.armTurnTimer()
}

func (g *Game) notifySnapshots() {
	for seat, c := range g.clients {
		if g.disconnects[seat] {
			continue
		}
		c.Send(message.NewNotifyGameState(g.engine.SnapshotFor(seat)))
	}
	obs := message.NewNotifyGameState(g.engine.SnapshotFor(-1))
	for _, o := range g.observers {
		o.Send(obs)
	}
}

// notifyRobbery tells everyone a card moved; only the thief and the
// victim learn which card.  A stolen cloth is announced to the whole
// table.
func (g *Game) notifyRobbery(thief, victim int, stolen simple.Resource) {
	if stolen == simple.ClothStolen {
		shown := message.NewNotifyRobbery(thief, victim, stolen)
		for seat, c := range g.clients {
			if !g.disconnects[seat] {
				c.Send(shown)
			}
		}
		for _, o := range g.observers {
			o.Send(shown)
		}
		return
	}
	hidden := message.NewNotifyRobbery(thief, victim, simple.Resource(-1))
	shown := message.NewNotifyRobbery(thief, victim, stolen)
	for seat, c := range g.clients {
		if g.disconnects[seat] {
			continue
		}
		if seat == thief || seat == victim {
			c.Send(shown)
		} else {
			c.Send(hidden)
		}
	}
	for _, o := range g.observers {
		o.Send(hidden)
	}
}

func (g *Game) armTurnTimer() {
	if g.cfg.TurnTimeout <= 0 {
		return
	}
	if g.status != Running && g.newStatus != Running {
		return
	}
	if g.engine.State() == StateOver {
		return
	}
	g.turnEpoch++
	epoch := g.turnEpoch
	time.AfterFunc(time.Duration(g.cfg.TurnTimeout)*time.Second, func() {
		select {
		case g.timeouts <- TimeoutType{Epoch: epoch}:
		default:
		}
	})
}

func (g *Game) checkStatus() {
	if g.status == g.newStatus {
		return
	}

	if g.status == Creating && g.newStatus == Running {
		// Bind each seated identity's connections to its seat; anyone
		// seated but not connected gets a disconnected client to grow
		// into when they come back.
		for seat := 0; seat < g.engine.SeatCount(); seat++ {
			p := g.engine.Player(seat)
			if p == nil {
				continue
			}
			var pc client.Client
			for i, o := range g.observers {
				if p.Identity == i {
					pc = o
					delete(g.observers, i)
					break
				}
			}
			if pc == nil {
				pc = client.NewDisconnectedMultiWebClient(p.Identity)
				go pc.Run()
				g.disconnects[seat] = true
			}
			g.clients[seat] = pc
		}
		g.times.running = time.Now()

		g.notify(message.NewNotifyStartGame(g.engine.CurrentPlayer()))
		g.notifySnapshots()
		g.armTurnTimer()
	}

	if g.status == Running && g.newStatus == Complete {
		g.times.complete = time.Now()
		winner := g.engine.Winner()
		scores := []int{}
		for seat := 0; seat < g.engine.SeatCount(); seat++ {
			if g.engine.Player(seat) == nil {
				scores = append(scores, 0)
				continue
			}
			scores = append(scores, g.engine.VPForSeat(seat))
		}
		g.infof("Game complete: winner seat %d, scores %v", winner, scores)
		g.notify(message.NewNotifyGameOver(winner, scores))
		g.storeResult(winner, scores)
	}

	g.status = g.newStatus
}

func (g *Game) storeResult(winner int, scores []int) {
	result := database.GameResult{
		Id:       g.Id,
		Created:  g.times.create,
		Started:  g.times.running,
		Finished: g.times.complete,
		Winner:   winner,
		Rounds:   g.engine.Rounds(),
	}
	for seat := 0; seat < g.engine.SeatCount(); seat++ {
		p := g.engine.Player(seat)
		if p == nil {
			continue
		}
		result.Players = append(result.Players, database.PlayerResult{
			Seat:     seat,
			Identity: p.Identity,
			Color:    p.Color,
			Score:    scores[seat],
			Knights:  p.KnightsPlayed,
		})
	}

	doc, err := json.Marshal(g.engine.SnapshotFor(-1))
	if err != nil {
		g.errorf("Marshalling final snapshot: %s", err)
		doc = nil
	}

	id := g.Id
	db := g.db
	go func() {
		if err := db.StoreResult(result); err != nil {
			log.Error("(G%s) StoreResult: %s", id, err)
		}
		if doc != nil {
			if err := db.ArchiveGame(id, doc); err != nil {
				log.Error("(G%s) ArchiveGame: %s", id, err)
			}
		}
	}()
}

func (g *Game) seatOf(i simple.Identity) int {
	for seat := 0; seat < g.engine.SeatCount(); seat++ {
		if p := g.engine.Player(seat); p != nil && p.Identity == i {
			return seat
		}
	}
	return -1
}

func (g *Game) panicking() {
	if r := recover(); r != nil {
		log.Stop(fmt.Sprintf("game %s panic", g.Id), r)
		panic(r)
	}
}

func (g *Game) clientError(c client.Client, header string, content string, fargs ...interface{}) {
	content = fmt.Sprintf(content, fargs...)
	g.debugf("(ClientError) (%s) %s: %s", c.Identity().Id, header, content)
	c.Send(message.NewNotifyNotification(message.NotificationError, header, content))
}

func (g *Game) notify(m message.Server) {
	for seat, c := range g.clients {
		if g.disconnects[seat] {
			continue
		}
		c.Send(m)
	}
	for _, o := range g.observers {
		o.Send(m)
	}
}

func (g *Game) debugf(msg string, fargs ...interface{}) {
	log.Debug(fmt.Sprintf("(G%s) %s", g.Id, msg), fargs...)
}

func (g *Game) infof(msg string, fargs ...interface{}) {
	log.Info(fmt.Sprintf("(G%s) %s", g.Id, msg), fargs...)
}

func (g *Game) errorf(msg string, fargs ...interface{}) {
	log.Error(fmt.Sprintf("(G%s) %s", g.Id, msg), fargs...)
}
