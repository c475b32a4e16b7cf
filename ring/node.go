package ring

// Ownership describes who controls a node from this agent's point of view.
type Ownership int

const (
	Uncontrolled Ownership = iota
	Mine
	Theirs
	Unknown // Not visible to this agent
)

func (o Ownership) String() string {
	switch o {
	case Mine:
		return "mine"
	case Theirs:
		return "theirs"
	case Uncontrolled:
		return "uncontrolled"
	default:
		return "unknown"
	}
}

// Code returns the single letter used for the ownership in step files.
func (o Ownership) Code() string {
	switch o {
	case Mine:
		return "Y"
	case Uncontrolled:
		return "N"
	case Unknown:
		return "U"
	default:
		return "T"
	}
}

// ParseOwnership maps a step file code to an ownership. Any code other than
// Y, N or U belongs to the opponent.
func ParseOwnership(code string) Ownership {
	switch code {
	case "Y":
		return Mine
	case "N":
		return Uncontrolled
	case "U":
		return Unknown
	default:
		return Theirs
	}
}

// Node is a single cell of the ring.
type Node struct {
	ID    int       // Position on the ring, stable for the whole game
	Owner Ownership // Who holds the node
	Count int       // Resources on the node, -1 if unknown
}

func (n Node) Visible() bool {
	return n.Owner != Unknown
}
