package core

import (
	"fmt"
	"math"
)

// Vec3 is a position in world space. Y is up; the ground plane is X/Z.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite reports whether every component is a real number.
func (v Vec3) IsFinite() bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// Towards returns the point reached by moving from `from` toward `to` by at
// most step units. It never overshoots `to`.
func Towards(from, to Vec3, step float64) Vec3 {
	d := to.Sub(from)
	l := d.Length()
	if l <= step || l == 0 {
		return to
	}
	return from.Add(d.Scale(step / l))
}
