package registry

import (
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Hidden returns the faces of block a that are never drawn when b is the
// neighbour across that face.
func (t *Table) Hidden(a, b world.BlockID) uint8 {
	return t.hidden[int(a)<<8|int(b)]
}

// IsFaceHidden reports whether face of a is hidden by neighbour b.
func (t *Table) IsFaceHidden(a, b world.BlockID, face world.Face) bool {
	return t.hidden[int(a)<<8|int(b)]&(1<<face) != 0
}

// RecalculateCulling rebuilds the hidden-face mask for every block pair.
func (t *Table) RecalculateCulling() {
	for a := range world.BlockCount {
		for b := range world.BlockCount {
			t.hidden[a<<8|b] = t.calcHidden(world.BlockID(a), world.BlockID(b))
		}
	}
}

func (t *Table) calcHidden(a, b world.BlockID) uint8 {
	if !t.hidesByStyle(a, b) {
		return 0
	}
	var mask uint8
	for f := world.Face(0); f < world.FaceCount; f++ {
		if t.coversFace(a, b, f) {
			mask |= 1 << f
		}
	}
	return mask
}

// hidesByStyle decides from draw styles alone whether b can hide faces of a.
func (t *Table) hidesByStyle(a, b world.BlockID) bool {
	da, db := t.Draw[a], t.Draw[b]
	if da == DrawGas || da == DrawSprite || db == DrawGas || db == DrawSprite {
		return false
	}
	if a == b {
		return da != DrawTransparentThick
	}
	if db == DrawOpaque && !t.Liquid[b] {
		return true
	}
	return da == DrawTranslucent && db == DrawTranslucent
}

// coversFace reports whether a's face lies on the cell boundary and b's
// opposite face lies flush against it while spanning at least the same area.
func (t *Table) coversFace(a, b world.BlockID, f world.Face) bool {
	aMin, aMax := t.MinBB[a], t.MaxBB[a]
	bMin, bMax := t.MinBB[b], t.MaxBB[b]

	var axis, u, v int
	switch f {
	case world.FaceXMin, world.FaceXMax:
		axis, u, v = 0, 1, 2
	case world.FaceZMin, world.FaceZMax:
		axis, u, v = 2, 0, 1
	default:
		axis, u, v = 1, 0, 2
	}

	if f&1 == 0 { // min face of a touches max face of b
		if aMin[axis] != 0 || bMax[axis] != 1 {
			return false
		}
	} else if aMax[axis] != 1 || bMin[axis] != 0 {
		return false
	}
	return spans(bMin, bMax, aMin, aMax, u) && spans(bMin, bMax, aMin, aMax, v)
}

func spans(outerMin, outerMax, innerMin, innerMax mgl32.Vec3, axis int) bool {
	return outerMin[axis] <= innerMin[axis] && outerMax[axis] >= innerMax[axis]
}
