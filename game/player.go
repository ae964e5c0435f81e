package game

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"spades/domain"
)

// NetworkSession abstracts the websocket so the pumps are testable with
// mocks.
type NetworkSession interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Ping() error
	Close(reason string)
}

// clientFrame is one inbound JSON message from a connected player.
type clientFrame struct {
	Action string       `json:"action"`
	Bid    *int         `json:"bid,omitempty"`
	Card   *domain.Card `json:"card,omitempty"`
}

// serverFrame is one outbound JSON message: either a state broadcast or
// an error echo for the sender's last action.
type serverFrame struct {
	Type  string                 `json:"type"`
	Error string                 `json:"error,omitempty"`
	View  *domain.PublicGameView `json:"view,omitempty"`
}

const (
	frameState = "state"
	frameError = "error"

	sendBuffer   = 64
	pingInterval = 30 * time.Second
)

// Player is one websocket client bound to a seat in a room. ReadPump
// turns frames into room commands; WritePump drains the send queue.
type Player struct {
	id      string
	seat    domain.Seat
	room    *Room
	session NetworkSession
	limiter *rate.Limiter
	send    chan []byte
	log     zerolog.Logger
}

func NewPlayer(id string, seat domain.Seat, room *Room, session NetworkSession, log zerolog.Logger) *Player {
	return &Player{
		id:      id,
		seat:    seat,
		room:    room,
		session: session,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		send:    make(chan []byte, sendBuffer),
		log:     log.With().Str("player", id).Stringer("seat", seat).Logger(),
	}
}

// SendState queues a redacted view for delivery. A client too slow to
// drain its queue loses intermediate states, never blocks the room.
func (p *Player) SendState(view domain.PublicGameView) {
	data, err := json.Marshal(serverFrame{Type: frameState, View: &view})
	if err != nil {
		p.log.Error().Err(err).Msg("could not marshal state frame")
		return
	}
	select {
	case p.send <- data:
	default:
		p.log.Warn().Msg("send queue full, dropping state frame")
	}
}

func (p *Player) sendError(err error) {
	data, jsonErr := json.Marshal(serverFrame{Type: frameError, Error: err.Error()})
	if jsonErr != nil {
		return
	}
	select {
	case p.send <- data:
	default:
	}
}

// ReadPump consumes frames until the connection drops, then hands the
// seat to a bot so the table keeps playing.
func (p *Player) ReadPump() {
	defer func() {
		p.room.Detach(p)
		p.room.Leave(p.seat)
		p.session.Close("")
	}()

	for {
		data, err := p.session.Read()
		if err != nil {
			return
		}
		if !p.limiter.Allow() {
			continue
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			p.log.Debug().Err(err).Msg("dropping malformed frame")
			continue
		}
		if err := p.dispatch(frame); err != nil {
			p.sendError(err)
		}
	}
}

func (p *Player) dispatch(frame clientFrame) error {
	switch frame.Action {
	case "bid":
		if frame.Bid == nil {
			return domain.ErrInvalidBid
		}
		_, err := p.room.Bid(p.seat, *frame.Bid)
		return err
	case "play":
		if frame.Card == nil {
			return domain.ErrCardNotHeld
		}
		_, err := p.room.Play(p.seat, *frame.Card)
		return err
	case "invite_bots":
		_, err := p.room.InviteBots()
		return err
	case "state":
		view, err := p.room.CurrentState(p.seat)
		if err != nil {
			return err
		}
		p.SendState(view)
		return nil
	default:
		p.log.Debug().Str("action", frame.Action).Msg("unknown action")
		return nil
	}
}

// WritePump flushes queued frames and keeps the connection alive with
// pings.
func (p *Player) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-p.send:
			if !ok {
				return
			}
			if err := p.session.Write(data); err != nil {
				return
			}
		case <-ticker.C:
			if err := p.session.Ping(); err != nil {
				return
			}
		}
	}
}
