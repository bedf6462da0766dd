package chunks

import (
	"math"
	"sort"

	"voxelmesh/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	halfChunk = 8
	// sphereRadius bounds a 16³ chunk around its centre, sqrt(3*8²).
	sphereRadius = 14
	// unloadMargin keeps chunks just outside the user view distance loaded.
	unloadMargin = 32 * 16
)

// Camera is the view state a frame is culled against.
type Camera struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
	// ViewProj is proj*view.
	ViewProj mgl32.Mat4
}

// AdjustViewDist turns a view distance in blocks into the squared distance
// compared against chunk sort keys.
func AdjustViewDist(dist int) int {
	d := int(math.Sqrt2*float64(max(dist, 16))) + 24
	return d * d
}

// UpdateFrame runs one frame of the chunk lifecycle. delta is the duration
// of the previous frame in seconds. It returns the chunks to draw, nearest
// first. The slice is reused by the next call.
func (m *Manager) UpdateFrame(cam Camera, delta float64) []*ChunkInfo {
	defer profiling.Track("chunks.UpdateFrame")()
	m.render = m.render[:0]
	if len(m.chunks) == 0 {
		return m.render
	}
	m.frustum = NewFrustum(cam.ViewProj)
	m.updateSortOrder(cam.Position)

	// Build more chunks while frames come in under the target time.
	if delta < m.settings.TargetFrameTime() {
		m.target++
	} else {
		m.target--
	}
	m.target = max(m.settings.MinChunkUpdates(), min(m.target, m.settings.MaxChunkUpdates()))

	samePos := !m.forceFull && cam.Position == m.lastPos &&
		cam.Yaw == m.lastYaw && cam.Pitch == m.lastPitch
	viewDistSqr := AdjustViewDist(m.settings.ViewDistance())
	userDistSqr := AdjustViewDist(m.settings.UserViewDistance())

	var updates int
	if samePos {
		m.updateChunksStill(viewDistSqr, userDistSqr, &updates)
	} else {
		m.updateChunksAndVisibility(viewDistSqr, userDistSqr, &updates)
	}

	m.lastPos, m.lastYaw, m.lastPitch = cam.Position, cam.Yaw, cam.Pitch
	m.forceFull = false
	m.lastUpdates = updates
	if !samePos || updates != 0 {
		m.resetPartFlags()
	}
	profiling.Count("chunks.updates", int64(updates))
	return m.render
}

func (m *Manager) inView(c *ChunkInfo, distSqr, viewDistSqr int) bool {
	return distSqr <= viewDistSqr &&
		m.frustum.SphereInFrustum(float32(c.CentreX), float32(c.CentreY), float32(c.CentreZ), sphereRadius)
}

func (m *Manager) updateChunksAndVisibility(viewDistSqr, userDistSqr int, updates *int) {
	for i, c := range m.sorted {
		distSqr := m.distances[i]
		c.Visible = m.inView(c, distSqr, viewDistSqr)
		if c.Empty {
			continue
		}
		noData := !c.HasData()
		if !noData && distSqr >= userDistSqr+unloadMargin {
			m.deleteChunk(c)
			continue
		}
		noData = noData || c.PendingDelete

		if noData && distSqr <= viewDistSqr && *updates < m.target {
			m.deleteChunk(c)
			m.buildChunk(c, updates)
		}
		if c.Visible && !c.Empty {
			m.render = append(m.render, c)
		}
	}
}

// updateChunksStill only builds chunks. Visibility and draw flags of the
// other chunks carry over from the last moving frame.
func (m *Manager) updateChunksStill(viewDistSqr, userDistSqr int, updates *int) {
	for i, c := range m.sorted {
		if c.Empty {
			continue
		}
		distSqr := m.distances[i]
		noData := !c.HasData()
		if !noData && distSqr >= userDistSqr+unloadMargin {
			m.deleteChunk(c)
			c.Visible = false
			continue
		}
		noData = noData || c.PendingDelete

		if noData && distSqr <= userDistSqr && *updates < m.target {
			m.deleteChunk(c)
			m.buildChunk(c, updates)
			c.Visible = m.inView(c, distSqr, viewDistSqr)
			if c.Visible && !c.Empty {
				m.render = append(m.render, c)
			}
		} else if c.Visible {
			m.render = append(m.render, c)
		}
	}
}

// updateSortOrder re-sorts the chunks when the camera enters another
// chunk cell and recomputes the back-face draw flags.
func (m *Manager) updateSortOrder(pos mgl32.Vec3) {
	x := (int(math.Floor(float64(pos.X()))) &^ 15) + halfChunk
	y := (int(math.Floor(float64(pos.Y()))) &^ 15) + halfChunk
	z := (int(math.Floor(float64(pos.Z()))) &^ 15) + halfChunk
	if m.cellValid && x == m.cellX && y == m.cellY && z == m.cellZ {
		return
	}
	m.cellX, m.cellY, m.cellZ, m.cellValid = x, y, z, true

	for i, c := range m.sorted {
		dx, dy, dz := c.CentreX-x, c.CentreY-y, c.CentreZ-z
		m.distances[i] = dx*dx + dy*dy + dz*dz

		// A chunk is culled on an axis only if both its planes are behind.
		c.DrawXMin = !(dx-halfChunk <= 0 && dx+halfChunk <= 0)
		c.DrawXMax = !(dx-halfChunk >= 0 && dx+halfChunk >= 0)
		c.DrawYMin = !(dy-halfChunk <= 0 && dy+halfChunk <= 0)
		c.DrawYMax = !(dy-halfChunk >= 0 && dy+halfChunk >= 0)
		c.DrawZMin = !(dz-halfChunk <= 0 && dz+halfChunk <= 0)
		c.DrawZMax = !(dz-halfChunk >= 0 && dz+halfChunk >= 0)
	}
	sort.Sort(byDistance{keys: m.distances, chunks: m.sorted})
	m.resetPartFlags()
}

// byDistance sorts chunks and their keys together.
type byDistance struct {
	keys   []int
	chunks []*ChunkInfo
}

func (s byDistance) Len() int           { return len(s.keys) }
func (s byDistance) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byDistance) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.chunks[i], s.chunks[j] = s.chunks[j], s.chunks[i]
}
