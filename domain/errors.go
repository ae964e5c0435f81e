package domain

import "errors"

// Validation failures leave the game untouched and are returned to the
// caller as structured values.
var (
	ErrSeatTaken   = errors.New("seat already taken")
	ErrSeatEmpty   = errors.New("seat is empty")
	ErrWrongPhase  = errors.New("operation not allowed in current phase")
	ErrNotYourTurn = errors.New("not your turn")
	ErrInvalidBid  = errors.New("bid must be between 0 and 7")
	ErrCardNotHeld = errors.New("card not in hand")
	ErrIllegalCard = errors.New("card is not a legal play")
)

// ErrNoValidCards indicates a seat with a non-empty hand has no legal
// play. That is structurally impossible, so it marks corrupted hand
// bookkeeping and aborts the round rather than being worked around.
var ErrNoValidCards = errors.New("no valid cards for a non-empty hand")
