package models

// Side identifies the color a player controls.
type Side string

const (
	SideWhite Side = "white"
	SideBlack Side = "black"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// Outcome is the terminal-state token a game log ends with. The game program
// writes one of the known tokens below, but any text is carried verbatim.
type Outcome string

const (
	OutcomeWhiteWon Outcome = "white_won"
	OutcomeBlackWon Outcome = "black_won"
	OutcomeTie      Outcome = "tie"
)

// Winner returns the side credited with the win. Ties, empty tokens and
// unrecognized tokens credit no one.
func (o Outcome) Winner() (Side, bool) {
	switch o {
	case OutcomeWhiteWon:
		return SideWhite, true
	case OutcomeBlackWon:
		return SideBlack, true
	default:
		return "", false
	}
}

// Decisive reports whether the outcome credits a win to either side.
func (o Outcome) Decisive() bool {
	_, ok := o.Winner()
	return ok
}

// MoveRecord is the time one side spent choosing a single ply.
type MoveRecord struct {
	Side Side
	// Duration is in microseconds.
	Duration int64
}

// GameLog is the parsed form of a raw per-game log.
type GameLog struct {
	// Path is where the log was read from, empty for in-memory logs.
	Path        string
	WhiteParams string
	BlackParams string
	Outcome     Outcome
	Moves       []MoveRecord
}

// MoveTimes returns the summed move durations and move count for side.
func (g *GameLog) MoveTimes(side Side) (total int64, count int) {
	for _, m := range g.Moves {
		if m.Side == side {
			total += m.Duration
			count++
		}
	}
	return total, count
}
