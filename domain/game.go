package domain

import "math/rand"

// Phase is the lifecycle stage of a game.
type Phase string

const (
	// PhaseAwaitingSeats is the pre-game state while seats fill up.
	PhaseAwaitingSeats Phase = "awaiting_seats"
	// PhaseBidding runs from the deal until all four bids are in.
	PhaseBidding Phase = "bidding"
	// PhasePlaying covers the 13 tricks of a round.
	PhasePlaying Phase = "playing"
	// PhaseRoundOver is the transient state while a round is scored.
	PhaseRoundOver Phase = "round_over"
	// PhaseGameOver is terminal; a partnership has won.
	PhaseGameOver Phase = "game_over"
)

const handSize = 13

// Game is the authoritative state of one table. It is mutated only
// through Sit, SeatBot, Bid, Play and Leave; the room actor guarantees
// at most one of those is in flight at a time.
type Game struct {
	Phase Phase

	// Seats maps each occupied seat to a player identity. Bots marks
	// which occupants are computer-controlled.
	Seats map[Seat]string
	Bots  map[Seat]bool

	Hands     map[Seat][]Card
	Bids      map[Seat]*int
	TricksWon map[Seat]int

	CurrentTrick Trick
	// Turn is the seat to move, nil before the first deal and after
	// game over.
	Turn *Seat

	// Played holds every card played this round, resolved tricks and
	// the in-flight trick both, so hands+played always cover the deck.
	Played       []Card
	SpadesBroken bool
	TricksPlayed int

	Score        GameScore
	WinThreshold int
	Winner       *Team

	rng *rand.Rand
}

// NewGame creates an empty table. The random source drives every deal
// and must be supplied by the caller.
func NewGame(rng *rand.Rand, winThreshold int) *Game {
	if winThreshold <= 0 {
		winThreshold = DefaultWinThreshold
	}
	return &Game{
		Phase:        PhaseAwaitingSeats,
		Seats:        make(map[Seat]string),
		Bots:         make(map[Seat]bool),
		Hands:        make(map[Seat][]Card),
		Bids:         make(map[Seat]*int),
		TricksWon:    make(map[Seat]int),
		WinThreshold: winThreshold,
		rng:          rng,
	}
}

// Sit occupies a seat with a human player. Sitting on a bot seat takes
// the bot's hand over so a player can rejoin a running round; sitting
// on another human fails with ErrSeatTaken. Dealing starts as soon as
// the fourth seat fills.
func (g *Game) Sit(seat Seat, playerID string) error {
	return g.sit(seat, playerID, false)
}

// SeatBot occupies a seat with a computer player.
func (g *Game) SeatBot(seat Seat, botID string) error {
	return g.sit(seat, botID, true)
}

func (g *Game) sit(seat Seat, id string, isBot bool) error {
	if _, occupied := g.Seats[seat]; occupied {
		if !g.Bots[seat] || isBot {
			return ErrSeatTaken
		}
		delete(g.Bots, seat)
	}
	g.Seats[seat] = id
	if isBot {
		g.Bots[seat] = true
	}
	if g.Phase == PhaseAwaitingSeats && len(g.Seats) == 4 {
		g.startRound()
	}
	return nil
}

// Leave removes a player. Before the first deal the seat is simply
// vacated; mid-game the seat is handed to a bot placeholder so the
// round continues rather than aborting.
func (g *Game) Leave(seat Seat, botID string) error {
	if _, occupied := g.Seats[seat]; !occupied {
		return ErrSeatEmpty
	}
	if g.Phase == PhaseAwaitingSeats {
		delete(g.Seats, seat)
		delete(g.Bots, seat)
		return nil
	}
	g.Seats[seat] = botID
	g.Bots[seat] = true
	return nil
}

// HumanCount returns the number of occupied seats not run by bots.
func (g *Game) HumanCount() int {
	count := 0
	for seat := range g.Seats {
		if !g.Bots[seat] {
			count++
		}
	}
	return count
}

func (g *Game) startRound() {
	deck := ShuffleDeck(g.rng, NewDeck())
	for i, seat := range AllSeats() {
		hand := make([]Card, handSize)
		copy(hand, deck[i*handSize:(i+1)*handSize])
		SortCards(hand)
		g.Hands[seat] = hand
		g.Bids[seat] = nil
		g.TricksWon[seat] = 0
	}
	g.CurrentTrick = nil
	g.Played = nil
	g.SpadesBroken = false
	g.TricksPlayed = 0
	g.Phase = PhaseBidding
	turn := North
	g.Turn = &turn
}

// Bid records a seat's contract for the round. Bidding starts at north
// and rotates clockwise; once all four bids are in, play begins with
// north leading.
func (g *Game) Bid(seat Seat, value int) error {
	if g.Phase != PhaseBidding {
		return ErrWrongPhase
	}
	if g.Turn == nil || *g.Turn != seat {
		return ErrNotYourTurn
	}
	if value < 0 || value > 7 {
		return ErrInvalidBid
	}
	bid := value
	g.Bids[seat] = &bid

	for _, s := range AllSeats() {
		if g.Bids[s] == nil {
			turn := seat.Next()
			g.Turn = &turn
			return nil
		}
	}
	g.Phase = PhasePlaying
	turn := North
	g.Turn = &turn
	return nil
}

// Play plays a card for the seat on turn. A completed trick resolves
// immediately: the winner's counter increments, the trick clears and
// the winner leads next. The 13th trick scores the round and either
// deals afresh or ends the game.
func (g *Game) Play(seat Seat, card Card) error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if g.Turn == nil || *g.Turn != seat {
		return ErrNotYourTurn
	}
	hand := g.Hands[seat]
	if !ContainsCard(hand, card) {
		return ErrCardNotHeld
	}
	if !ContainsCard(g.ValidCards(seat), card) {
		return ErrIllegalCard
	}

	g.Hands[seat] = RemoveCard(hand, card)
	g.CurrentTrick = append(g.CurrentTrick, TrickCard{Card: card, Seat: seat})
	g.Played = append(g.Played, card)
	if card.Suit == Spades {
		g.SpadesBroken = true
	}

	if len(g.CurrentTrick) < 4 {
		turn := seat.Next()
		g.Turn = &turn
		return nil
	}

	winner := g.CurrentTrick[g.CurrentTrick.WinnerIndex()].Seat
	g.TricksWon[winner]++
	g.TricksPlayed++
	g.CurrentTrick = nil
	g.Turn = &winner

	if g.TricksPlayed == handSize {
		g.finishRound()
	}
	return nil
}

func (g *Game) finishRound() {
	g.Phase = PhaseRoundOver

	bids := make(map[Seat]int, 4)
	for seat, bid := range g.Bids {
		if bid != nil {
			bids[seat] = *bid
		}
	}
	g.Score.ApplyRound(bids, g.TricksWon)

	if winner, over := g.Score.Winner(g.WinThreshold); over {
		g.Phase = PhaseGameOver
		g.Winner = &winner
		g.Turn = nil
		return
	}
	g.startRound()
}

// ValidCards enumerates the legal plays for a seat. Leading is free
// except that spades cannot be led until broken, unless only spades
// remain. Following requires the led suit when held; a void seat may
// trump or discard freely.
func (g *Game) ValidCards(seat Seat) []Card {
	hand := g.Hands[seat]

	if len(g.CurrentTrick) == 0 {
		if !g.SpadesBroken {
			nonSpades := make([]Card, 0, len(hand))
			for _, c := range hand {
				if c.Suit != Spades {
					nonSpades = append(nonSpades, c)
				}
			}
			if len(nonSpades) > 0 {
				return nonSpades
			}
		}
		out := make([]Card, len(hand))
		copy(out, hand)
		return out
	}

	led := g.CurrentTrick.LedSuit()
	follow := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit == led {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	out := make([]Card, len(hand))
	copy(out, hand)
	return out
}

// IsBotTurn reports whether the seat on turn is computer-controlled
// and has a move to make.
func (g *Game) IsBotTurn() bool {
	if g.Turn == nil {
		return false
	}
	if g.Phase != PhaseBidding && g.Phase != PhasePlaying {
		return false
	}
	return g.Bots[*g.Turn]
}

// PartnerBid returns the partner's declared bid, or nil if the partner
// has not bid this round.
func (g *Game) PartnerBid(seat Seat) *int {
	return g.Bids[seat.Partner()]
}
