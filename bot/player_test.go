package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spades/domain"
)

// playingGame seats four players and runs the bidding so the table is
// in the play phase. Hands are then overwritten per test.
func playingGame(t *testing.T, bids [4]int) *domain.Game {
	t.Helper()
	g := domain.NewGame(rand.New(rand.NewSource(1)), domain.DefaultWinThreshold)
	for _, seat := range domain.AllSeats() {
		require.NoError(t, g.Sit(seat, seat.String()))
	}
	for i, seat := range domain.AllSeats() {
		require.NoError(t, g.Bid(seat, bids[i]))
	}
	return g
}

func setTrick(g *domain.Game, cards ...domain.TrickCard) {
	g.CurrentTrick = domain.Trick(cards)
	for _, tc := range cards {
		g.Played = append(g.Played, tc.Card)
	}
	next := cards[len(cards)-1].Seat.Next()
	g.Turn = &next
}

func TestChoosePlay_NilBidderFollowsLow(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 0, 3, 3})
	setTrick(g, domain.TrickCard{Card: heart(10), Seat: domain.North})
	g.Hands[domain.East] = []domain.Card{heart(2), heart(9), heart(domain.King)}

	card, err := ChoosePlay(DefaultTuning, g, domain.East)
	require.NoError(t, err)
	assert.Equal(t, heart(2), card)
}

func TestChoosePlay_NilBidderLeadsLowNonSpade(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{0, 3, 3, 3})
	g.Hands[domain.North] = []domain.Card{spade(2), heart(3), club(9)}

	card, err := ChoosePlay(DefaultTuning, g, domain.North)
	require.NoError(t, err)
	assert.Equal(t, heart(3), card)
}

func TestChoosePlay_BeatsOpponentCheaply(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	setTrick(g, domain.TrickCard{Card: heart(domain.Queen), Seat: domain.North})
	g.Hands[domain.East] = []domain.Card{heart(3), heart(domain.King), heart(domain.Ace)}

	card, err := ChoosePlay(DefaultTuning, g, domain.East)
	require.NoError(t, err)
	assert.Equal(t, heart(domain.King), card, "the king wins as surely as the ace")
}

func TestChoosePlay_TrumpsWithSafeSpade(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	g.Played = []domain.Card{spade(domain.Jack), spade(7)}
	g.SpadesBroken = true
	setTrick(g, domain.TrickCard{Card: heart(5), Seat: domain.North})
	g.Hands[domain.East] = []domain.Card{spade(3), spade(domain.Queen), club(2)}

	card, err := ChoosePlay(DefaultTuning, g, domain.East)
	require.NoError(t, err)
	assert.Equal(t, spade(domain.Queen), card, "only a spade above the jack is safe")
}

func TestChoosePlay_DiscardsWhenNoSafeTrump(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	g.Played = []domain.Card{spade(domain.Jack)}
	g.SpadesBroken = true
	setTrick(g, domain.TrickCard{Card: heart(5), Seat: domain.North})
	g.Hands[domain.East] = []domain.Card{spade(3), club(8), club(2)}

	card, err := ChoosePlay(DefaultTuning, g, domain.East)
	require.NoError(t, err)
	assert.Equal(t, club(2), card, "an unsafe low spade is worth more than this trick")
}

func TestChoosePlay_DucksUnderWinningPartner(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	setTrick(g,
		domain.TrickCard{Card: heart(8), Seat: domain.North},
		domain.TrickCard{Card: heart(4), Seat: domain.East},
	)
	g.Hands[domain.South] = []domain.Card{heart(2), heart(domain.King)}

	card, err := ChoosePlay(DefaultTuning, g, domain.South)
	require.NoError(t, err)
	assert.Equal(t, heart(2), card, "partner's eight already has the trick")
}

func TestChoosePlay_FourthSeatOvertake(t *testing.T) {
	t.Parallel()

	trick := []domain.TrickCard{
		{Card: heart(5), Seat: domain.North},
		{Card: heart(domain.Jack), Seat: domain.East},
		{Card: heart(7), Seat: domain.South},
	}

	t.Run("overtakes a critical trick once trump is gone", func(t *testing.T) {
		t.Parallel()
		g := playingGame(t, [4]int{3, 3, 3, 3})
		for r := 2; r <= 10; r++ {
			g.Played = append(g.Played, spade(r))
		}
		setTrick(g, trick...)
		g.Hands[domain.West] = []domain.Card{heart(2), heart(domain.Queen)}

		card, err := ChoosePlay(DefaultTuning, g, domain.West)
		require.NoError(t, err)
		assert.Equal(t, heart(domain.Queen), card)
	})

	t.Run("plays under partner while trump is live", func(t *testing.T) {
		t.Parallel()
		g := playingGame(t, [4]int{3, 3, 3, 3})
		setTrick(g, trick...)
		g.Hands[domain.West] = []domain.Card{heart(2), heart(domain.Queen)}

		card, err := ChoosePlay(DefaultTuning, g, domain.West)
		require.NoError(t, err)
		assert.Equal(t, heart(2), card)
	})
}

func TestCheapestWinning(t *testing.T) {
	t.Parallel()
	trick := domain.Trick{{Card: heart(domain.Queen), Seat: domain.North}}
	testCases := []struct {
		desc     string
		valid    []domain.Card
		expected domain.Card
		ok       bool
	}{
		{
			desc:     "lowest card of the led suit that still wins",
			valid:    []domain.Card{heart(3), heart(domain.King), heart(domain.Ace)},
			expected: heart(domain.King),
			ok:       true,
		},
		{
			desc:     "following suit beats ruffing when both win",
			valid:    []domain.Card{heart(domain.King), spade(2)},
			expected: heart(domain.King),
			ok:       true,
		},
		{
			desc:     "lowest trump when void in the led suit",
			valid:    []domain.Card{spade(9), spade(3), club(domain.Ace)},
			expected: spade(3),
			ok:       true,
		},
		{
			desc:  "nothing held can win",
			valid: []domain.Card{heart(4), club(domain.Ace)},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			card, ok := cheapestWinning(&situation{trick: trick, valid: tc.valid})
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.expected, card)
			}
		})
	}
}

func TestChoosePlay_ProtectsNilPartner(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 0})
	setTrick(g, domain.TrickCard{Card: heart(9), Seat: domain.North})
	g.Hands[domain.East] = []domain.Card{heart(6), heart(domain.Queen)}

	card, err := ChoosePlay(DefaultTuning, g, domain.East)
	require.NoError(t, err)
	assert.Equal(t, heart(domain.Queen), card, "take the trick before the nil partner must beat the nine")
}

func TestChoosePlay_LeadsTopOfSequence(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	g.Hands[domain.North] = []domain.Card{
		heart(domain.Queen), heart(domain.King),
		club(2), club(7),
		diamond(3),
		spade(5), spade(6),
	}

	card, err := ChoosePlay(DefaultTuning, g, domain.North)
	require.NoError(t, err)
	assert.Equal(t, heart(domain.King), card, "losing the king promotes the queen")
}

func TestChoosePlay_LeadsMidRankProbe(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	g.Hands[domain.North] = []domain.Card{
		heart(2), heart(8),
		club(4), club(domain.Jack),
		diamond(6),
	}

	card, err := ChoosePlay(DefaultTuning, g, domain.North)
	require.NoError(t, err)
	assert.Equal(t, heart(8), card)
}

func TestChoosePlay_EndgameCashesBossSpade(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	g.TricksPlayed = 11
	g.SpadesBroken = true
	g.Hands[domain.North] = []domain.Card{spade(domain.Ace), heart(2)}

	card, err := ChoosePlay(DefaultTuning, g, domain.North)
	require.NoError(t, err)
	assert.Equal(t, spade(domain.Ace), card)
}

func TestChoosePlay_EmptyLegalSetIsFatal(t *testing.T) {
	t.Parallel()
	g := playingGame(t, [4]int{3, 3, 3, 3})
	g.Hands[domain.North] = nil

	_, err := ChoosePlay(DefaultTuning, g, domain.North)
	assert.ErrorIs(t, err, domain.ErrNoValidCards)
}

// TestAgent_PlaysFullGames drives four bots against each other and
// checks that every move they produce is legal.
func TestAgent_PlaysFullGames(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 5; trial++ {
		g := domain.NewGame(rand.New(rand.NewSource(int64(trial))), domain.DefaultWinThreshold)
		agents := make(map[domain.Seat]*Agent, 4)
		for _, seat := range domain.AllSeats() {
			agent := NewAgent(rng, DefaultTuning)
			agents[seat] = agent
			require.NoError(t, g.SeatBot(seat, agent.ID))
		}

		for moves := 0; g.Phase != domain.PhaseGameOver && moves < 20000; moves++ {
			require.True(t, g.IsBotTurn())
			seat := *g.Turn
			require.NoError(t, agents[seat].Act(g))
		}
		require.NotEmpty(t, g.Score.History, "at least one round was scored")
	}
}
