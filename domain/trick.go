package domain

// TrickCard is a played card tagged with the seat that played it.
type TrickCard struct {
	Card Card `json:"card"`
	Seat Seat `json:"seat"`
}

// Trick is the ordered sequence of cards played so far in the current
// trick, oldest first. The first card's suit is the led suit.
type Trick []TrickCard

const (
	ledSuitWeight = 100
	trumpWeight   = 200
)

// LedSuit returns the suit of the first card played. Only meaningful
// for a non-empty trick.
func (t Trick) LedSuit() Suit {
	return t[0].Card.Suit
}

// SuitPriority returns the weight added to each suit's card ranks when
// comparing plays. Spades are always trump: off a non-spade lead the
// led suit weighs 100 and spades 200, so any trump beats any led-suit
// card and discards of the two remaining suits can never win. Off a
// spade lead everything except spades weighs 100, so no discard can
// beat a trump.
func SuitPriority(led Suit) [4]int {
	var weights [4]int
	if led == Spades {
		for s := Clubs; s <= Spades; s++ {
			weights[s] = ledSuitWeight
		}
	} else {
		weights[led] = ledSuitWeight
	}
	weights[Spades] = trumpWeight
	return weights
}

// CardValue is rank plus suit priority under the given led suit. Every
// (rank, suit) pair is unique in the deck so ties cannot occur.
func CardValue(c Card, led Suit) int {
	return c.Rank + SuitPriority(led)[c.Suit]
}

// WinnerIndex returns the index of the currently winning card. Panics
// on an empty trick; callers resolve tricks only after a play.
func (t Trick) WinnerIndex() int {
	led := t.LedSuit()
	best := 0
	for i := 1; i < len(t); i++ {
		if CardValue(t[i].Card, led) > CardValue(t[best].Card, led) {
			best = i
		}
	}
	return best
}

// WinningCard returns the card currently winning the trick, if any.
func (t Trick) WinningCard() (TrickCard, bool) {
	if len(t) == 0 {
		return TrickCard{}, false
	}
	return t[t.WinnerIndex()], true
}

// Copy returns an independent copy of the trick for views.
func (t Trick) Copy() Trick {
	out := make(Trick, len(t))
	copy(out, t)
	return out
}
