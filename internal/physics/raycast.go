package physics

import (
	"math"

	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0

	stepSize = float32(0.02)
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition [3]int
	// AdjacentPosition is the last cell the ray crossed before the hit,
	// where a placed block goes.
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// CanPick reports whether the ray stops at block b. Gas and liquids are
// passed through.
func CanPick(blocks *registry.Table, b world.BlockID) bool {
	return blocks.Draw[b] != registry.DrawGas && !blocks.Liquid[b]
}

func cellOf(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p.X()))),
		int(math.Floor(float64(p.Y()))),
		int(math.Floor(float64(p.Z()))),
	}
}

// Raycast marches from start along direction and returns the first pickable
// block between minDist and maxDist. Cells outside the world never hit.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, w *world.World, blocks *registry.Table) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	direction = direction.Normalize()
	steps := int(maxDist / stepSize)

	lastEmpty := cellOf(start)
	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}
		cell := cellOf(start.Add(direction.Mul(dist)))
		if w.Contains(cell[0], cell[1], cell[2]) && CanPick(blocks, w.GetBlock(cell[0], cell[1], cell[2])) {
			return RaycastResult{
				HitPosition:      cell,
				AdjacentPosition: lastEmpty,
				Distance:         dist,
				Hit:              true,
			}
		}
		lastEmpty = cell
	}
	return RaycastResult{}
}
