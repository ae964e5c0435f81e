package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"spades/bot"
	"spades/domain"
)

type commandKind int

const (
	cmdSit commandKind = iota
	cmdBid
	cmdPlay
	cmdLeave
	cmdInviteBots
	cmdState
	cmdAttach
	cmdDetach
)

type command struct {
	kind     commandKind
	seat     domain.Seat
	playerID string
	bid      int
	card     domain.Card
	player   *Player

	// viewer is the seat the reply view is redacted for.
	viewer domain.Seat
	reply  chan result
}

type result struct {
	view domain.PublicGameView
	err  error
}

// RoomStore persists room metadata and finished games. Persistence is
// best-effort: the engine never blocks on it and ignores its errors
// beyond logging.
type RoomStore interface {
	SaveRoom(ctx context.Context, roomID string, createdAt time.Time) error
	SaveResult(ctx context.Context, roomID string, winner string, scores [2]int, rounds int) error
}

// Room owns one table. All access goes through the inbox: a single
// goroutine applies commands in receipt order, so at most one mutation
// of the Game is ever in flight and no locking is needed inside.
type Room struct {
	ID string

	inbox chan command
	stop  chan struct{}
	// done is closed by the supervisor once the actor has terminated
	// for good; callers then fail fast with ErrRoomClosed.
	done chan struct{}

	log   zerolog.Logger
	store RoomStore

	// Everything below is owned by the actor goroutine.
	game        *domain.Game
	rng         *rand.Rand
	tuning      bot.Tuning
	threshold   int
	agents      map[domain.Seat]*bot.Agent
	players     map[*Player]struct{}
	closing     bool
	resultSaved bool
}

// NewRoom builds a room around a fresh game. The caller (the registry)
// is responsible for running its actor under supervision.
func NewRoom(id string, rng *rand.Rand, tuning bot.Tuning, winThreshold int, store RoomStore, log zerolog.Logger) *Room {
	return &Room{
		ID:        id,
		inbox:     make(chan command, 64),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		log:       log.With().Str("room", id).Logger(),
		store:     store,
		game:      domain.NewGame(rng, winThreshold),
		rng:       rng,
		tuning:    tuning,
		threshold: winThreshold,
		agents:    make(map[domain.Seat]*bot.Agent),
		players:   make(map[*Player]struct{}),
	}
}

// Sit seats a human player and returns their view of the table.
func (r *Room) Sit(seat domain.Seat, playerID string) (domain.PublicGameView, error) {
	return r.do(command{kind: cmdSit, seat: seat, playerID: playerID, viewer: seat})
}

// Bid records a contract for the seat.
func (r *Room) Bid(seat domain.Seat, value int) (domain.PublicGameView, error) {
	return r.do(command{kind: cmdBid, seat: seat, bid: value, viewer: seat})
}

// Play plays a card for the seat.
func (r *Room) Play(seat domain.Seat, card domain.Card) (domain.PublicGameView, error) {
	return r.do(command{kind: cmdPlay, seat: seat, card: card, viewer: seat})
}

// Leave removes the seat's player. Mid-round the seat is handed to a
// bot so the table keeps playing; the room closes once no humans remain.
func (r *Room) Leave(seat domain.Seat) (domain.PublicGameView, error) {
	return r.do(command{kind: cmdLeave, seat: seat, viewer: domain.NoSeat})
}

// InviteBots fills every empty seat with a computer player.
func (r *Room) InviteBots() (domain.PublicGameView, error) {
	return r.do(command{kind: cmdInviteBots, viewer: domain.NoSeat})
}

// CurrentState returns the table redacted for the given viewer without
// mutating anything.
func (r *Room) CurrentState(viewer domain.Seat) (domain.PublicGameView, error) {
	return r.do(command{kind: cmdState, viewer: viewer})
}

// Attach subscribes a connected player to state broadcasts.
func (r *Room) Attach(p *Player) error {
	_, err := r.do(command{kind: cmdAttach, player: p, viewer: domain.NoSeat})
	return err
}

// Detach drops a player from broadcasts, typically on disconnect.
func (r *Room) Detach(p *Player) {
	r.do(command{kind: cmdDetach, player: p, viewer: domain.NoSeat})
}

// Close asks the actor to terminate. Idempotent from the caller's side;
// later commands fail with ErrRoomClosed.
func (r *Room) Close() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

func (r *Room) do(cmd command) (domain.PublicGameView, error) {
	cmd.reply = make(chan result, 1)
	select {
	case r.inbox <- cmd:
	case <-r.done:
		return domain.PublicGameView{}, ErrRoomClosed
	}
	select {
	case res := <-cmd.reply:
		return res.view, res.err
	case <-r.done:
		return domain.PublicGameView{}, ErrRoomClosed
	}
}

// run is the actor loop. It returns nil on a deliberate stop and an
// error when a command handler panicked; the supervisor decides whether
// to restart.
func (r *Room) run() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("room actor panic: %v", p)
		}
	}()
	for {
		select {
		case cmd := <-r.inbox:
			r.handle(cmd)
			if r.closing {
				return nil
			}
		case <-r.stop:
			return nil
		}
	}
}

// resetGame discards the table after a crash. In-progress round state
// lives only in actor memory, so a crash loses it; seated players are
// kept out of the fresh game and must sit again.
func (r *Room) resetGame() {
	r.game = domain.NewGame(r.rng, r.threshold)
	r.agents = make(map[domain.Seat]*bot.Agent)
	r.resultSaved = false
	r.broadcast()
}

func (r *Room) handle(cmd command) {
	// The caller must not hang when this command crashes the actor:
	// answer first, then let the supervisor deal with the panic.
	defer func() {
		if p := recover(); p != nil {
			cmd.reply <- result{err: ErrRoomClosed}
			panic(p)
		}
	}()

	var err error
	mutated := true
	switch cmd.kind {
	case cmdSit:
		err = r.game.Sit(cmd.seat, cmd.playerID)
		if err == nil {
			// The seat may have been taken over from a bot; a later
			// handover must mint a fresh agent, not revive this one.
			delete(r.agents, cmd.seat)
		}
	case cmdBid:
		err = r.game.Bid(cmd.seat, cmd.bid)
	case cmdPlay:
		err = r.game.Play(cmd.seat, cmd.card)
	case cmdLeave:
		err = r.leave(cmd.seat)
	case cmdInviteBots:
		r.inviteBots()
	case cmdAttach:
		r.players[cmd.player] = struct{}{}
		cmd.player.SendState(domain.ViewFor(r.game, cmd.player.seat))
		mutated = false
	case cmdDetach:
		delete(r.players, cmd.player)
		mutated = false
	case cmdState:
		mutated = false
	}

	if err == nil && mutated {
		r.driveBots()
		r.saveResultOnce()
		r.broadcast()
	}
	cmd.reply <- result{view: domain.ViewFor(r.game, cmd.viewer), err: err}
}

func (r *Room) leave(seat domain.Seat) error {
	agent := r.agents[seat]
	if agent == nil {
		agent = bot.NewAgent(r.rng, r.tuning)
		r.agents[seat] = agent
	}
	if err := r.game.Leave(seat, agent.ID); err != nil {
		return err
	}
	if r.game.HumanCount() == 0 {
		r.log.Info().Msg("last human left, closing room")
		r.closing = true
	}
	return nil
}

func (r *Room) inviteBots() {
	for _, seat := range domain.AllSeats() {
		if _, occupied := r.game.Seats[seat]; occupied {
			continue
		}
		agent := bot.NewAgent(r.rng, r.tuning)
		r.agents[seat] = agent
		if err := r.game.SeatBot(seat, agent.ID); err != nil {
			r.log.Warn().Err(err).Stringer("seat", seat).Msg("could not seat bot")
		}
	}
}

// driveBots plays out bot turns synchronously until the turn lands on a
// human or the round ends. A bot that cannot produce a legal move has
// hit a state invariant violation; the panic aborts the round via the
// supervisor rather than papering over corrupt state.
func (r *Room) driveBots() {
	for r.game.IsBotTurn() {
		seat := *r.game.Turn
		agent := r.agents[seat]
		if agent == nil {
			agent = bot.NewAgent(r.rng, r.tuning)
			r.agents[seat] = agent
		}
		if err := agent.Act(r.game); err != nil {
			r.log.Error().Err(err).Stringer("seat", seat).Msg("bot move failed")
			panic(fmt.Sprintf("bot move failed for %s: %v", seat, err))
		}
	}
}

func (r *Room) broadcast() {
	for p := range r.players {
		p.SendState(domain.ViewFor(r.game, p.seat))
	}
}

func (r *Room) saveResultOnce() {
	if r.store == nil || r.resultSaved || r.game.Phase != domain.PhaseGameOver || r.game.Winner == nil {
		return
	}
	r.resultSaved = true

	roomID := r.ID
	winner := r.game.Winner.String()
	scores := [2]int{
		r.game.Score.Teams[domain.NorthSouth].Score,
		r.game.Score.Teams[domain.EastWest].Score,
	}
	rounds := len(r.game.Score.History)
	log := r.log
	store := r.store
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.SaveResult(ctx, roomID, winner, scores, rounds); err != nil {
			log.Warn().Err(err).Msg("could not persist game result")
		}
	}()
}
