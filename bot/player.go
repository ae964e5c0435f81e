package bot

import (
	"spades/domain"
)

// situation is everything one play decision looks at, derived once per
// call so the selectors stay small.
type situation struct {
	tuning Tuning
	game   *domain.Game
	seat   domain.Seat
	hand   []domain.Card
	valid  []domain.Card
	trick  domain.Trick

	selfNil    bool
	partnerNil bool

	// partnerWinning holds when the trick is in progress and the
	// partner's card is currently on top.
	partnerWinning bool
}

// selector proposes a card for one situation, or passes to let the next
// selector in the chain decide.
type selector func(s *situation) (domain.Card, bool)

// ChoosePlay picks a legal card for the seat on turn. The decision
// dispatches on trick position; each position runs a chain of selectors
// ending in a lowest-card fallback, so a card is always produced when
// any legal card exists.
func ChoosePlay(tuning Tuning, g *domain.Game, seat domain.Seat) (domain.Card, error) {
	valid := g.ValidCards(seat)
	if len(valid) == 0 {
		return domain.Card{}, domain.ErrNoValidCards
	}

	s := &situation{
		tuning:  tuning,
		game:    g,
		seat:    seat,
		hand:    g.Hands[seat],
		valid:   valid,
		trick:   g.CurrentTrick,
		selfNil: bidIsNil(g.Bids[seat]),
	}
	s.partnerNil = bidIsNil(g.Bids[seat.Partner()])
	if best, ok := g.CurrentTrick.WinningCard(); ok {
		s.partnerWinning = best.Seat == seat.Partner()
	}

	var chain []selector
	switch len(g.CurrentTrick) {
	case 0:
		chain = leadChain
	case 3:
		chain = fourthSeatChain
	default:
		chain = followChain
	}
	for _, sel := range chain {
		if c, ok := sel(s); ok {
			return c, nil
		}
	}
	return lowestCard(s.valid), nil
}

func bidIsNil(bid *int) bool {
	return bid != nil && *bid == 0
}

var leadChain = []selector{
	leadSafeForOwnNil,
	leadHighForNilPartner,
	leadEndgameBoss,
	leadSequenceTop,
	leadProbe,
}

var followChain = []selector{
	followLowestForOwnNil,
	protectNilPartner,
	duckUnderWinningPartner,
	winCheaply,
	trumpSafely,
	discardWeakest,
}

var fourthSeatChain = []selector{
	followLowestForOwnNil,
	protectNilPartner,
	overtakeOrDuck,
	winCheaply,
	trumpSafely,
	discardWeakest,
}

// leadSafeForOwnNil keeps a nil bid alive: lead the lowest card held,
// staying out of spades when possible.
func leadSafeForOwnNil(s *situation) (domain.Card, bool) {
	if !s.selfNil {
		return domain.Card{}, false
	}
	if c, ok := lowestOfSuits(s.valid, domain.Clubs, domain.Diamonds, domain.Hearts); ok {
		return c, true
	}
	return lowestCard(s.valid), true
}

// leadHighForNilPartner draws out the table's high cards before the nil
// partner has to follow to them.
func leadHighForNilPartner(s *situation) (domain.Card, bool) {
	if !s.partnerNil {
		return domain.Card{}, false
	}
	return highestCard(s.valid), true
}

// leadEndgameBoss cashes known winners once most of the round is over:
// first a boss spade, then a side-suit card nothing left in play can
// beat.
func leadEndgameBoss(s *situation) (domain.Card, bool) {
	if s.game.TricksPlayed < s.tuning.EndgameTricks {
		return domain.Card{}, false
	}
	for _, c := range s.valid {
		if c.Suit == domain.Spades && bossOfSuit(s, c) {
			return c, true
		}
	}
	for _, c := range s.valid {
		if c.Suit != domain.Spades && bossOfSuit(s, c) {
			return c, true
		}
	}
	return domain.Card{}, false
}

// leadSequenceTop leads the top of a two-plus run of touching ranks.
// Sequences keep control: losing the top card promotes the next.
// Spade sequences are skipped on short trump holdings.
func leadSequenceTop(s *situation) (domain.Card, bool) {
	for s2 := domain.Spades; s2 >= domain.Clubs; s2-- {
		if s2 == domain.Spades &&
			len(domain.SuitCards(s.hand, domain.Spades)) < s.tuning.SpadeLeadMinCount {
			continue
		}
		suited := domain.SuitCards(s.valid, s2)
		for i := len(suited) - 1; i > 0; i-- {
			if suited[i].Rank == suited[i-1].Rank+1 {
				return suited[i], true
			}
		}
	}
	return domain.Card{}, false
}

// leadProbe opens with a mid-rank card that neither wastes an honor nor
// gifts a cheap trick.
func leadProbe(s *situation) (domain.Card, bool) {
	var candidates []domain.Card
	for _, c := range s.valid {
		if c.Suit == domain.Spades {
			continue
		}
		if c.Rank >= s.tuning.ProbeRankMin && c.Rank <= s.tuning.ProbeRankMax {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return domain.Card{}, false
	}
	return highestCard(candidates), true
}

// followLowestForOwnNil always dumps the lowest legal card on a nil bid.
func followLowestForOwnNil(s *situation) (domain.Card, bool) {
	if !s.selfNil {
		return domain.Card{}, false
	}
	return lowestCard(s.valid), true
}

// protectNilPartner takes over the trick when the nil partner is in
// danger of winning it.
func protectNilPartner(s *situation) (domain.Card, bool) {
	if !s.partnerNil || s.partnerWinning {
		return domain.Card{}, false
	}
	if c, ok := cheapestWinning(s); ok {
		return c, true
	}
	return domain.Card{}, false
}

// duckUnderWinningPartner conserves strength while the partner already
// has an ordinary trick.
func duckUnderWinningPartner(s *situation) (domain.Card, bool) {
	if !s.partnerWinning || criticalTrick(s) {
		return domain.Card{}, false
	}
	return weakestPlay(s), true
}

// overtakeOrDuck is the fourth seat's version of ducking: overtake a
// winning partner only for a critical trick once trump is mostly gone,
// otherwise play under.
func overtakeOrDuck(s *situation) (domain.Card, bool) {
	if !s.partnerWinning {
		return domain.Card{}, false
	}
	if criticalTrick(s) && spadesSeen(s.game) >= s.tuning.TrumpExhausted {
		if c, ok := cheapestWinning(s); ok {
			return c, true
		}
	}
	return weakestPlay(s), true
}

// winCheaply beats the current best play with the cheapest card that
// does so, following suit when possible.
func winCheaply(s *situation) (domain.Card, bool) {
	led := s.trick.LedSuit()
	var candidates []domain.Card
	for _, c := range s.valid {
		if c.Suit != led {
			continue
		}
		if beatsTrick(s, c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return domain.Card{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best, true
}

// cheapestWinning finds the least valuable legal card that takes the
// trick as it stands: the lowest winner of the led suit when one is
// held, else the lowest winning trump. Comparing by card value makes a
// led-suit winner always cheaper than ruffing.
func cheapestWinning(s *situation) (domain.Card, bool) {
	led := s.trick.LedSuit()
	var best *domain.Card
	for _, c := range s.valid {
		c := c
		if !beatsTrick(s, c) {
			continue
		}
		if best == nil || domain.CardValue(c, led) < domain.CardValue(*best, led) {
			best = &c
		}
	}
	if best == nil {
		return domain.Card{}, false
	}
	return *best, true
}

// trumpSafely ruffs with the lowest spade ranked above every spade
// already seen this round. A lower spade risks an over-ruff for nothing.
func trumpSafely(s *situation) (domain.Card, bool) {
	led := s.trick.LedSuit()
	if led == domain.Spades {
		return domain.Card{}, false
	}
	seen := highestSpadeSeen(s.game)
	var best *domain.Card
	for _, c := range s.valid {
		c := c
		if c.Suit != domain.Spades || c.Rank <= seen || !beatsTrick(s, c) {
			continue
		}
		if best == nil || c.Rank < best.Rank {
			best = &c
		}
	}
	if best == nil {
		return domain.Card{}, false
	}
	return *best, true
}

// discardWeakest sheds the lowest non-spade when the trick cannot be
// won, keeping trump for later.
func discardWeakest(s *situation) (domain.Card, bool) {
	if c, ok := lowestOfSuits(s.valid, domain.Clubs, domain.Diamonds, domain.Hearts); ok {
		return c, true
	}
	return domain.Card{}, false
}

// criticalTrick marks tricks worth fighting over: an honor is on the
// table or the round is in its endgame.
func criticalTrick(s *situation) bool {
	if s.game.TricksPlayed >= s.tuning.EndgameTricks {
		return true
	}
	for _, tc := range s.trick {
		if tc.Card.Rank >= s.tuning.CriticalRank {
			return true
		}
	}
	return false
}

// beatsTrick reports whether playing c would take the lead in the
// current trick.
func beatsTrick(s *situation, c domain.Card) bool {
	best, ok := s.trick.WinningCard()
	if !ok {
		return true
	}
	led := s.trick.LedSuit()
	return domain.CardValue(c, led) > domain.CardValue(best.Card, led)
}

// weakestPlay is the legal card with the least trick-taking power under
// the current led suit.
func weakestPlay(s *situation) domain.Card {
	led := s.trick.LedSuit()
	worst := s.valid[0]
	for _, c := range s.valid[1:] {
		if domain.CardValue(c, led) < domain.CardValue(worst, led) {
			worst = c
		}
	}
	return worst
}

// bossOfSuit reports whether every card of c's suit ranked above c has
// already been played or sits in this hand, so nothing in play beats it.
func bossOfSuit(s *situation, c domain.Card) bool {
	for r := c.Rank + 1; r <= domain.MaxRank; r++ {
		higher := domain.Card{Rank: r, Suit: c.Suit}
		if domain.ContainsCard(s.game.Played, higher) {
			continue
		}
		if domain.ContainsCard(s.hand, higher) {
			continue
		}
		return false
	}
	return true
}

// spadesSeen counts the spades played so far this round.
func spadesSeen(g *domain.Game) int {
	count := 0
	for _, c := range g.Played {
		if c.Suit == domain.Spades {
			count++
		}
	}
	return count
}

// highestSpadeSeen returns the top spade rank played this round, or 0.
func highestSpadeSeen(g *domain.Game) int {
	top := 0
	for _, c := range g.Played {
		if c.Suit == domain.Spades && c.Rank > top {
			top = c.Rank
		}
	}
	return top
}

func lowestCard(cards []domain.Card) domain.Card {
	low := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < low.Rank || (c.Rank == low.Rank && c.Suit < low.Suit) {
			low = c
		}
	}
	return low
}

func highestCard(cards []domain.Card) domain.Card {
	high := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > high.Rank || (c.Rank == high.Rank && c.Suit > high.Suit) {
			high = c
		}
	}
	return high
}

func lowestOfSuits(cards []domain.Card, suits ...domain.Suit) (domain.Card, bool) {
	var candidates []domain.Card
	for _, c := range cards {
		for _, s := range suits {
			if c.Suit == s {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return domain.Card{}, false
	}
	return lowestCard(candidates), true
}
