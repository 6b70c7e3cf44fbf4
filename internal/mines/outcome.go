package mines

type OutcomeKind uint8

const (
	NoAction OutcomeKind = iota
	Reveal
	GameOver
	Victory
	FlagToggle
)

func (k OutcomeKind) String() string {
	switch k {
	case NoAction:
		return "no action"
	case Reveal:
		return "reveal"
	case GameOver:
		return "game over"
	case Victory:
		return "victory"
	case FlagToggle:
		return "flag toggle"
	default:
		return "unknown"
	}
}

// Outcome reports what a move did. Affected lists the cells whose display
// state may have changed; each cell appears at most once.
type Outcome struct {
	Kind     OutcomeKind
	Affected []Point
}

func (o Outcome) Terminal() bool {
	return o.Kind == GameOver || o.Kind == Victory
}

var noAction = Outcome{Kind: NoAction, Affected: []Point{}}
