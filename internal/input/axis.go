package input

// Axis1D pairs two analog channels into a signed axis.
// Its value is Analog(Positive) - Analog(Negative).
type Axis1D struct {
	Negative string `json:"negative" yaml:"negative"`
	Positive string `json:"positive" yaml:"positive"`
}

// NewAxis1D creates an axis from its negative and positive channel names.
func NewAxis1D(negative, positive string) Axis1D {
	return Axis1D{Negative: negative, Positive: positive}
}

// Axis2D pairs two 1-D axes.
type Axis2D struct {
	X Axis1D `json:"x" yaml:"x"`
	Y Axis1D `json:"y" yaml:"y"`
}

// NewAxis2D creates a 2-D axis from its components.
func NewAxis2D(x, y Axis1D) Axis2D {
	return Axis2D{X: x, Y: y}
}

// Vec2 is the value of a 2-D axis.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}
