package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bidSet(north, east, south, west int) map[Seat]int {
	return map[Seat]int{North: north, East: east, South: south, West: west}
}

func trickSet(north, east, south, west int) map[Seat]int {
	return map[Seat]int{North: north, East: east, South: south, West: west}
}

func TestApplyRound_ContractMade(t *testing.T) {
	t.Parallel()
	var gs GameScore
	gs.ApplyRound(bidSet(2, 3, 2, 3), trickSet(2, 4, 2, 5))

	assert.Equal(t, 40, gs.Teams[NorthSouth].Score, "bid 4, took exactly 4")
	assert.Equal(t, 0, gs.Teams[NorthSouth].Bags)
	assert.Equal(t, 60, gs.Teams[EastWest].Score, "bid 6, took 9: +60 and 3 bags")
	assert.Equal(t, 3, gs.Teams[EastWest].Bags)
}

func TestApplyRound_Overtricks(t *testing.T) {
	t.Parallel()
	var gs GameScore
	gs.ApplyRound(bidSet(2, 3, 2, 4), trickSet(3, 3, 3, 4))

	assert.Equal(t, 40, gs.Teams[NorthSouth].Score, "bid 4, took 6: +40 and 2 bags")
	assert.Equal(t, 2, gs.Teams[NorthSouth].Bags)
	assert.Equal(t, 70, gs.Teams[EastWest].Score)
}

func TestApplyRound_ContractMissed(t *testing.T) {
	t.Parallel()
	var gs GameScore
	gs.ApplyRound(bidSet(4, 1, 3, 1), trickSet(3, 4, 2, 4))

	assert.Equal(t, -70, gs.Teams[NorthSouth].Score)
	assert.Equal(t, 0, gs.Teams[NorthSouth].Bags, "no bags on a missed contract")
}

func TestApplyRound_NilBids(t *testing.T) {
	t.Parallel()

	t.Run("made nil scores +100 independent of team contract", func(t *testing.T) {
		t.Parallel()
		var gs GameScore
		gs.ApplyRound(bidSet(0, 3, 4, 3), trickSet(0, 5, 3, 5))

		// South's contract of 4 fails (-40); north's nil still pays.
		assert.Equal(t, 60, gs.Teams[NorthSouth].Score)
	})

	t.Run("broken nil scores -100", func(t *testing.T) {
		t.Parallel()
		var gs GameScore
		gs.ApplyRound(bidSet(0, 3, 5, 3), trickSet(1, 3, 4, 5))

		// Team contract of 5 made exactly (+50), nil broken (-100).
		assert.Equal(t, -50, gs.Teams[NorthSouth].Score)
		assert.Equal(t, 0, gs.Teams[NorthSouth].Bags)
	})

	t.Run("double nil has no team contract", func(t *testing.T) {
		t.Parallel()
		var gs GameScore
		gs.ApplyRound(bidSet(0, 6, 0, 6), trickSet(0, 6, 1, 6))

		assert.Equal(t, 0, gs.Teams[NorthSouth].Score, "+100 made nil, -100 broken nil")
		assert.Equal(t, 1, gs.Teams[NorthSouth].Bags, "tricks beyond a zero bid still bag")
	})
}

func TestApplyRound_BagPenalty(t *testing.T) {
	t.Parallel()
	var gs GameScore
	gs.Teams[NorthSouth].Bags = 9

	gs.ApplyRound(bidSet(2, 3, 2, 3), trickSet(4, 3, 2, 4))

	require.Equal(t, 11, gs.Teams[NorthSouth].Bags)
	// +40 contract, -100 for crossing ten bags exactly once.
	assert.Equal(t, -60, gs.Teams[NorthSouth].Score)
}

func TestApplyRound_BagPenaltyAppliesPerThresholdCrossed(t *testing.T) {
	t.Parallel()
	var gs GameScore
	gs.Teams[NorthSouth].Bags = 8

	// 13 bags in one round: both nil, every trick is a bag.
	gs.ApplyRound(bidSet(0, 1, 0, 1), trickSet(7, 0, 6, 0))

	require.Equal(t, 21, gs.Teams[NorthSouth].Bags)
	// Nil penalties -200, crossing 10 and 20 costs 200 more.
	assert.Equal(t, -400, gs.Teams[NorthSouth].Score)
}

func TestApplyRound_RecordsHistoryFromRunningCounters(t *testing.T) {
	t.Parallel()
	var gs GameScore
	gs.Teams[NorthSouth] = TeamScore{Score: 50, Bags: 3}

	result := gs.ApplyRound(bidSet(2, 3, 2, 4), trickSet(3, 3, 3, 4))

	require.Len(t, gs.History, 1)
	assert.Equal(t, TeamScore{Score: 50, Bags: 3}, result.Before[NorthSouth])
	assert.Equal(t, TeamScore{Score: 90, Bags: 5}, result.After[NorthSouth])
	assert.Equal(t, result, gs.History[0])
}

func TestWinner(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc     string
		ns, ew   int
		expected Team
		over     bool
	}{
		{desc: "nobody at threshold", ns: 90, ew: 80, over: false},
		{desc: "north-south wins", ns: 110, ew: 80, expected: NorthSouth, over: true},
		{desc: "east-west wins", ns: -30, ew: 100, expected: EastWest, over: true},
		{desc: "tie at threshold continues play", ns: 120, ew: 120, over: false},
		{desc: "leader below threshold continues", ns: 90, ew: -200, over: false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			gs := GameScore{}
			gs.Teams[NorthSouth].Score = tc.ns
			gs.Teams[EastWest].Score = tc.ew
			winner, over := gs.Winner(DefaultWinThreshold)
			require.Equal(t, tc.over, over)
			if over {
				assert.Equal(t, tc.expected, winner)
			}
		})
	}
}
