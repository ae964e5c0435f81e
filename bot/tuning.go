package bot

// Tuning gathers the heuristic constants the bidder and player work
// with. The values are empirically tuned; treat them as configuration,
// not as derived quantities.
type Tuning struct {
	// Bidding.
	LowSpadeDiscount float64 // subtracted from the low-spade estimate
	SequenceReward   float64 // per consecutive pair of low spades
	VoidBonus        float64
	SingletonBonus   float64
	DoubletonBonus   float64
	NilMaxSoftBid    int // soft bid must not exceed this for a nil
	NilMaxSpades     int
	NilMinShortSuits int
	PartnerStrongBid int // partner bid at or above this supports a nil
	PartnerWeakBid   int // partner bid at or below this needs covering
	PartnerNilSignal int // partner bid at or above this means go conservative
	CombinedCeiling  int // combined team bid to start clamping at
	MaxBid           int

	// Play.
	EndgameTricks     int // completed tricks that mark the endgame
	CriticalRank      int // a played rank at or above this makes a trick critical
	TrumpExhausted    int // spades seen that mean trump is mostly gone
	ProbeRankMin      int
	ProbeRankMax      int
	SpadeLeadMinCount int // avoid leading spades when holding fewer
}

// DefaultTuning mirrors the constants the heuristics were tuned with.
var DefaultTuning = Tuning{
	LowSpadeDiscount: 0.2,
	SequenceReward:   0.25,
	VoidBonus:        0.5,
	SingletonBonus:   0.25,
	DoubletonBonus:   0.15,
	NilMaxSoftBid:    3,
	NilMaxSpades:     3,
	NilMinShortSuits: 2,
	PartnerStrongBid: 4,
	PartnerWeakBid:   2,
	PartnerNilSignal: 7,
	CombinedCeiling:  12,
	MaxBid:           7,

	EndgameTricks:     10,
	CriticalRank:      10,
	TrumpExhausted:    9,
	ProbeRankMin:      6,
	ProbeRankMax:      10,
	SpadeLeadMinCount: 4,
}
