package model

// EdgeFamily distinguishes the two kinds of jointed edge in the box.
type EdgeFamily int

const (
	EdgeWidth  EdgeFamily = iota // Edges along the book width: even segment count
	EdgeHeight                   // Edges along the book height: odd slots, even fingers
)

func (f EdgeFamily) String() string {
	if f == EdgeHeight {
		return "Height"
	}
	return "Width"
}

// JointPlan describes how one edge family is divided into fingers and slots.
type JointPlan struct {
	Family  EdgeFamily `json:"family"`
	Count   int        `json:"count"`    // Total segments (fingers + slots)
	Length  float64    `json:"length"`   // Uniform segment length in mm
	InRange bool       `json:"in_range"` // Length lies within the configured min/max
}

// Slots returns the number of recessed segments.
func (p JointPlan) Slots() int {
	if p.Family == EdgeHeight {
		return (p.Count + 1) / 2
	}
	return p.Count / 2
}

// Fingers returns the number of protruding segments.
func (p JointPlan) Fingers() int {
	return p.Count - p.Slots()
}

// Span is the edge length covered by all segments together.
func (p JointPlan) Span() float64 {
	return float64(p.Count) * p.Length
}

// JointSet is the pair of plans shared by every panel of one box.
// Mating edges must be cut from the same plan or the panels will not interlock.
type JointSet struct {
	Width  JointPlan `json:"width"`
	Height JointPlan `json:"height"`
}
