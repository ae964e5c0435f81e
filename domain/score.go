package domain

// DefaultWinThreshold is the score a partnership must reach to end the
// game, provided the partnerships are not tied.
const DefaultWinThreshold = 100

const (
	trickValue = 10
	bagLimit   = 10
	bagPenalty = 100
	nilReward  = 100
)

// TeamScore is a partnership's running score and bag count.
type TeamScore struct {
	Score int `json:"score"`
	Bags  int `json:"bags"`
}

// RoundResult records one scored round for both partnerships. After is
// always derived from Before plus that round's bids and trick counts,
// never recomputed from earlier history.
type RoundResult struct {
	Before [2]TeamScore `json:"before"`
	After  [2]TeamScore `json:"after"`
}

// GameScore tracks both partnerships across rounds.
type GameScore struct {
	Teams   [2]TeamScore  `json:"teams"`
	History []RoundResult `json:"history"`
}

// ApplyRound scores a completed round. Bids must all be non-nil and the
// trick counts must total 13; the state machine guarantees both.
func (gs *GameScore) ApplyRound(bids map[Seat]int, tricks map[Seat]int) RoundResult {
	result := RoundResult{Before: gs.Teams}

	for _, team := range []Team{NorthSouth, EastWest} {
		seats := team.Seats()
		before := gs.Teams[team]
		after := before

		bidSum := bids[seats[0]] + bids[seats[1]]
		taken := tricks[seats[0]] + tricks[seats[1]]

		// Team contract. A nil bidder contributes 0 to the sum; a
		// double-nil team has no contract to make or break.
		if bidSum > 0 {
			if taken >= bidSum {
				after.Score += trickValue * bidSum
			} else {
				after.Score -= trickValue * bidSum
			}
		}

		// Bags accumulate; each time the running count passes another
		// multiple of ten the partnership pays the penalty once.
		if bags := taken - bidSum; bags > 0 {
			crossings := (before.Bags+bags)/bagLimit - before.Bags/bagLimit
			after.Bags += bags
			after.Score -= bagPenalty * crossings
		}

		// Nil bids settle per seat, independent of the contract math.
		for _, seat := range seats {
			if bids[seat] != 0 {
				continue
			}
			if tricks[seat] == 0 {
				after.Score += nilReward
			} else {
				after.Score -= nilReward
			}
		}

		gs.Teams[team] = after
	}

	result.After = gs.Teams
	gs.History = append(gs.History, result)
	return result
}

// Winner reports whether the game is over under the given threshold and
// which partnership won. A tied score keeps the game going even past
// the threshold.
func (gs *GameScore) Winner(threshold int) (Team, bool) {
	a, b := gs.Teams[NorthSouth].Score, gs.Teams[EastWest].Score
	if a == b {
		return 0, false
	}
	leader := NorthSouth
	if b > a {
		leader = EastWest
	}
	if gs.Teams[leader].Score < threshold {
		return 0, false
	}
	return leader, true
}
