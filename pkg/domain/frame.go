package domain

// Frame is a keyframe of a layer at an integer time (in frames).
// Times are unique per layer by convention only.
type Frame struct {
	Layer   Ptr[Layer]
	Time    int32
	Strokes []Box[Stroke]
}

func (Frame) Kind() Kind { return KindFrame }

func NewFrame(layer Ptr[Layer], time int32) Frame {
	return Frame{Layer: layer, Time: time}
}

// Vec2 is a point in graphic space.
type Vec2 struct {
	X float32 `mapstructure:"x" yaml:"x"`
	Y float32 `mapstructure:"y" yaml:"y"`
}

// BezierPoint is one anchor of a cubic chain with its two control points.
type BezierPoint struct {
	A Vec2 `mapstructure:"a" yaml:"a"`
	P Vec2 `mapstructure:"p" yaml:"p"`
	B Vec2 `mapstructure:"b" yaml:"b"`
}

// Stroke is a vector shape made of one or more bezier chains.
type Stroke struct {
	Frame  Ptr[Frame]
	Color  Color
	Radius float32
	Filled bool
	Points [][]BezierPoint
}

func (Stroke) Kind() Kind { return KindStroke }

func NewStroke(frame Ptr[Frame]) Stroke {
	return Stroke{
		Frame:  frame,
		Color:  Black,
		Radius: 0.05,
	}
}

// ClonePoints deep-copies a chain list so stored strokes never share
// backing arrays with callers.
func ClonePoints(points [][]BezierPoint) [][]BezierPoint {
	if points == nil {
		return nil
	}
	out := make([][]BezierPoint, len(points))
	for i, chain := range points {
		out[i] = append([]BezierPoint(nil), chain...)
	}
	return out
}
