package domain

import "math/rand"

// Suit identifies one of the four French suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitNames = [...]string{"clubs", "diamonds", "hearts", "spades"}

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "unknown"
	}
	return suitNames[s]
}

// Ranks run 2..14 with the ace high.
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14

	MinRank = 2
	MaxRank = Ace
)

var rankNames = map[int]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// Card is an immutable playing card. Equality is by (rank, suit).
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	name, ok := rankNames[c.Rank]
	if !ok {
		name = string(rune('0' + c.Rank%10))
		if c.Rank == 10 {
			name = "10"
		}
	}
	return name + " of " + c.Suit.String()
}

// NewDeck returns the full 52-card deck in suit then rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := MinRank; r <= MaxRank; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of deck using the supplied source.
// Randomness is always injected so deals are reproducible in tests.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortCards orders cards by suit, then ascending rank. Used to make
// player-facing views deterministic.
func SortCards(cards []Card) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cardBefore(cards[j], cards[j-1]); j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

func cardBefore(a, b Card) bool {
	if a.Suit != b.Suit {
		return a.Suit < b.Suit
	}
	return a.Rank < b.Rank
}

// SuitCards returns the cards of the given suit, sorted by ascending rank.
func SuitCards(cards []Card, suit Suit) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	SortCards(out)
	return out
}

// ContainsCard reports whether cards holds an exact (rank, suit) match.
func ContainsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard returns hand without the first occurrence of card.
func RemoveCard(hand []Card, card Card) []Card {
	out := make([]Card, 0, len(hand))
	removed := false
	for _, c := range hand {
		if !removed && c == card {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}
