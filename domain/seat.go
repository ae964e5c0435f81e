package domain

// Seat identifies one of the four fixed positions at the table. Play
// proceeds clockwise in declaration order, so Next is +1 mod 4 and a
// seat's partner always sits two positions away.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// NoSeat is the viewer identity of a spectator; every hand is redacted
// for it.
const NoSeat Seat = -1

var seatNames = [...]string{"north", "east", "south", "west"}

func (s Seat) String() string {
	if s < North || s > West {
		return "none"
	}
	return seatNames[s]
}

// ParseSeat maps a wire-level seat name to a Seat.
func ParseSeat(name string) (Seat, bool) {
	for i, n := range seatNames {
		if n == name {
			return Seat(i), true
		}
	}
	return NoSeat, false
}

// Next returns the seat to play after s, clockwise.
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the seat partnered with s. Partnerships are fixed:
// north+south vs east+west.
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// AllSeats lists the seats in clockwise play order starting at north.
func AllSeats() [4]Seat {
	return [4]Seat{North, East, South, West}
}

// Team identifies a partnership.
type Team int

const (
	NorthSouth Team = iota
	EastWest
)

var teamNames = [...]string{"north-south", "east-west"}

func (t Team) String() string {
	if t < NorthSouth || t > EastWest {
		return "unknown"
	}
	return teamNames[t]
}

// Team returns the partnership the seat belongs to.
func (s Seat) Team() Team {
	if s == North || s == South {
		return NorthSouth
	}
	return EastWest
}

// Seats returns the two seats of the partnership.
func (t Team) Seats() [2]Seat {
	if t == NorthSouth {
		return [2]Seat{North, South}
	}
	return [2]Seat{East, West}
}

// Opponent returns the other partnership.
func (t Team) Opponent() Team {
	return 1 - t
}
