package fx

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Polar returns the vector of length r at angle theta (radians).
func Polar(r, theta float64) Vec2 {
	return Vec2{r * math.Cos(theta), r * math.Sin(theta)}
}
