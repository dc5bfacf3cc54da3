package math

import stdmath "math"

// NewEmptyExtents returns extents that contain nothing: min is +Inf and
// max is -Inf, so the first union with real extents replaces them.
func NewEmptyExtents() Extents3D {
	inf := float32(stdmath.Inf(1))
	return Extents3D{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the extents contain no point.
func (e Extents3D) IsEmpty() bool {
	return e.Min.X > e.Max.X || e.Min.Y > e.Max.Y || e.Min.Z > e.Max.Z
}

// Range is max - min.
func (e Extents3D) Range() Vec3 {
	return e.Max.Sub(e.Min)
}

// Center is the midpoint between min and max.
func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// ExtentsFromPositions computes the extents of a flat xyz position buffer.
// A trailing partial triple is ignored.
func ExtentsFromPositions(positions []float32) Extents3D {
	if len(positions) < 3 {
		return NewEmptyExtents()
	}
	min := NewVec3FromSlice(positions)
	max := min
	for i := 3; i+2 < len(positions); i += 3 {
		p := NewVec3FromSlice(positions[i : i+3])
		min = p.MinComponents(min)
		max = p.MaxComponents(max)
	}
	return Extents3D{Min: min, Max: max}
}

// ExtentsUnion returns the smallest extents containing all of the given ones.
func ExtentsUnion(extents ...Extents3D) Extents3D {
	out := NewEmptyExtents()
	for _, e := range extents {
		out.Min = e.Min.MinComponents(out.Min)
		out.Max = e.Max.MaxComponents(out.Max)
	}
	return out
}
