package bot

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"spades/domain"
)

var botNames = []string{
	"Ada", "Blaise", "Carl", "Dot", "Emmy", "Felix", "Grace", "Hopper",
}

// Agent is one computer player: a stable identity plus the tuning its
// decisions run with.
type Agent struct {
	ID     string
	Name   string
	tuning Tuning
}

// NewAgent mints an agent with a fresh identity. The random source only
// picks the display name.
func NewAgent(rng *rand.Rand, tuning Tuning) *Agent {
	name := botNames[rng.Intn(len(botNames))]
	id := uuid.NewString()
	return &Agent{
		ID:     id,
		Name:   fmt.Sprintf("%s (bot %s)", name, id[:4]),
		tuning: tuning,
	}
}

// Act makes the agent's move for the seat on turn: a bid during the
// bidding phase, a card during play. The caller guarantees the seat on
// turn belongs to this agent.
func (a *Agent) Act(g *domain.Game) error {
	if g.Turn == nil {
		return domain.ErrWrongPhase
	}
	seat := *g.Turn

	switch g.Phase {
	case domain.PhaseBidding:
		bid := SuggestBid(a.tuning, g.Hands[seat], g.PartnerBid(seat))
		return g.Bid(seat, bid)
	case domain.PhasePlaying:
		card, err := ChoosePlay(a.tuning, g, seat)
		if err != nil {
			return err
		}
		return g.Play(seat, card)
	default:
		return domain.ErrWrongPhase
	}
}
