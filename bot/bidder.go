package bot

import (
	"math"

	"spades/domain"
)

// SuggestBid estimates a contract for a 13-card hand. partnerBid is the
// partner's declared bid, nil when the partner has not bid yet. The
// result is 0 (nil bid) or a value in [1, 7].
func SuggestBid(tuning Tuning, hand []domain.Card, partnerBid *int) int {
	spades := domain.SuitCards(hand, domain.Spades)
	hard := hardBid(spades)
	soft := softBid(tuning, hand, spades, hard)

	if nilEligible(tuning, hand, spades, hard, soft, partnerBid) {
		return 0
	}

	base := soft
	switch {
	case partnerBid != nil && *partnerBid >= tuning.PartnerNilSignal:
		// A huge partner bid usually covers the table; count only
		// what this hand is sure to take.
		base = hard
	case partnerBid != nil && *partnerBid <= tuning.PartnerWeakBid:
		base = max(soft+1, hard)
	}

	if partnerBid != nil && base+*partnerBid >= tuning.CombinedCeiling && base >= 1 {
		base = max(tuning.CombinedCeiling-1-*partnerBid, 1)
	}

	base += distributionBonus(tuning, hand)

	if base < 1 {
		base = 1
	}
	if base > tuning.MaxBid {
		base = tuning.MaxBid
	}
	return base
}

// hardBid counts the spade tricks the hand cannot lose: the run of
// consecutive top spades down from the ace, plus half of the remaining
// jack-or-better spades.
func hardBid(spades []domain.Card) int {
	held := make(map[int]bool, len(spades))
	for _, c := range spades {
		held[c.Rank] = true
	}

	run := 0
	for r := domain.Ace; held[r]; r-- {
		run++
	}

	honors := 0
	for r := domain.Jack; r < domain.Ace-run+1; r++ {
		if held[r] {
			honors++
		}
	}
	return run + honors/2
}

// softBid layers optimistic estimates on top of hardBid: low spades
// that may score by length, and high cards in the side suits.
func softBid(tuning Tuning, hand, spades []domain.Card, hard int) int {
	points := float64(hard) + lowSpadePotential(tuning, spades)

	offSuit := 0.0
	for _, suit := range []domain.Suit{domain.Clubs, domain.Diamonds, domain.Hearts} {
		offSuit += honorPoints(domain.SuitCards(hand, suit))
	}
	points += math.Round(offSuit + 1.0)

	return int(points)
}

// lowSpadePotential estimates tricks from spades below the ten. Long
// holdings outlast the opposition's trumps, and touching ranks cover
// for each other.
func lowSpadePotential(tuning Tuning, spades []domain.Card) float64 {
	var low []domain.Card
	for _, c := range spades {
		if c.Rank < 10 {
			low = append(low, c)
		}
	}
	if len(low) == 0 {
		return 0
	}

	estimate := math.Ceil(float64(len(low))/2) - tuning.LowSpadeDiscount
	for i := 1; i < len(low); i++ {
		if low[i].Rank == low[i-1].Rank+1 {
			estimate += tuning.SequenceReward
		}
	}
	if estimate < 0 {
		estimate = 0
	}
	return math.Trunc(estimate)
}

// honorLengthFactor discounts honors held in long suits: the longer the
// suit, the likelier an honor is trumped before it cashes.
var honorLengthFactor = map[int]float64{
	0: 1.0, 1: 1.0, 2: 1.0,
	3: 0.9,
	4: 0.75,
	5: 0.6,
}

// honorBasePoints values each top honor on its own. An ace almost
// always cashes, a jack rarely does.
var honorBasePoints = map[int]float64{
	domain.Ace:   1.5,
	domain.King:  1.0,
	domain.Queen: 0.5,
	domain.Jack:  0.25,
}

// honorPoints scores the {A,K,Q,J} holding of one side suit, scaled by
// suit length. Ace-king doubleton is worth 2.5, the same honors in a
// six-card suit only 1.0. Unguarded honors below the ace are halved.
func honorPoints(suit []domain.Card) float64 {
	points := 0.0
	for _, c := range suit {
		base, ok := honorBasePoints[c.Rank]
		if !ok {
			continue
		}
		if len(suit) == 1 && c.Rank != domain.Ace {
			base /= 2
		}
		points += base
	}
	factor, ok := honorLengthFactor[len(suit)]
	if !ok {
		factor = 0.4
	}
	return points * factor
}

// nilEligible decides a nil bid. Every condition must hold: no sure
// tricks, little overall strength, few spades, no ace or king anywhere
// and at least two short suits to dump dangerous cards into. A partner
// who already bid low needs help winning tricks, so nil is off.
func nilEligible(tuning Tuning, hand, spades []domain.Card, hard, soft int, partnerBid *int) bool {
	if partnerBid != nil && *partnerBid < tuning.PartnerStrongBid {
		return false
	}
	if hard != 0 || soft > tuning.NilMaxSoftBid {
		return false
	}
	if len(spades) > tuning.NilMaxSpades {
		return false
	}
	for _, c := range hand {
		if c.Rank == domain.Ace || c.Rank == domain.King {
			return false
		}
	}
	return shortSuits(hand) >= tuning.NilMinShortSuits
}

func shortSuits(hand []domain.Card) int {
	count := 0
	for s := domain.Clubs; s <= domain.Spades; s++ {
		if len(domain.SuitCards(hand, s)) <= 1 {
			count++
		}
	}
	return count
}

// distributionBonus rewards shape in the side suits: voids and short
// suits turn low spades into ruffing tricks.
func distributionBonus(tuning Tuning, hand []domain.Card) int {
	bonus := 0.0
	for _, suit := range []domain.Suit{domain.Clubs, domain.Diamonds, domain.Hearts} {
		switch len(domain.SuitCards(hand, suit)) {
		case 0:
			bonus += tuning.VoidBonus
		case 1:
			bonus += tuning.SingletonBonus
		case 2:
			bonus += tuning.DoubletonBonus
		}
	}
	return int(math.Round(bonus))
}
