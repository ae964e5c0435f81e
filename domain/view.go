package domain

// SeatView is one seat as a given viewer sees it. Only the viewer's
// own cards are present; everyone else's hand is reduced to a count.
type SeatView struct {
	Occupied  bool   `json:"occupied"`
	Bot       bool   `json:"bot"`
	PlayerID  string `json:"player_id,omitempty"`
	CardCount int    `json:"card_count"`
	Hand      []Card `json:"hand,omitempty"`
	Bid       *int   `json:"bid,omitempty"`
	TricksWon int    `json:"tricks_won"`
}

// PublicGameView is the redacted projection of a Game for one viewer.
// It is a pure function of (game, viewer): the same inputs always
// produce the same view.
type PublicGameView struct {
	Phase        Phase             `json:"phase"`
	Turn         *Seat             `json:"turn,omitempty"`
	Viewer       Seat              `json:"viewer"`
	Seats        [4]SeatView       `json:"seats"`
	CurrentTrick Trick             `json:"current_trick"`
	SpadesBroken bool              `json:"spades_broken"`
	TricksPlayed int               `json:"tricks_played"`
	Score        [2]TeamScore      `json:"score"`
	History      []RoundResult     `json:"history,omitempty"`
	Winner       *Team             `json:"winner,omitempty"`
	ValidCards   []Card            `json:"valid_cards,omitempty"`
}

// ViewFor projects the game for the given viewer seat. Pass NoSeat for
// a spectator view with every hand redacted.
func ViewFor(g *Game, viewer Seat) PublicGameView {
	view := PublicGameView{
		Phase:        g.Phase,
		Viewer:       viewer,
		CurrentTrick: g.CurrentTrick.Copy(),
		SpadesBroken: g.SpadesBroken,
		TricksPlayed: g.TricksPlayed,
		Score:        g.Score.Teams,
		Winner:       g.Winner,
	}
	if g.Turn != nil {
		turn := *g.Turn
		view.Turn = &turn
	}
	if len(g.Score.History) > 0 {
		view.History = make([]RoundResult, len(g.Score.History))
		copy(view.History, g.Score.History)
	}

	for i, seat := range AllSeats() {
		sv := SeatView{TricksWon: g.TricksWon[seat]}
		if id, ok := g.Seats[seat]; ok {
			sv.Occupied = true
			sv.Bot = g.Bots[seat]
			sv.PlayerID = id
			sv.CardCount = len(g.Hands[seat])
		}
		if seat == viewer {
			hand := make([]Card, len(g.Hands[seat]))
			copy(hand, g.Hands[seat])
			SortCards(hand)
			sv.Hand = hand
		}
		if bid := g.Bids[seat]; bid != nil {
			b := *bid
			sv.Bid = &b
		}
		view.Seats[i] = sv
	}

	if viewer != NoSeat && view.Turn != nil && *view.Turn == viewer && g.Phase == PhasePlaying {
		valid := g.ValidCards(viewer)
		SortCards(valid)
		view.ValidCards = valid
	}
	return view
}
