package chunks

import (
	"voxelmesh/internal/atlas"
	"voxelmesh/internal/gpu"
	"voxelmesh/internal/profiling"
)

// Drawer issues the draw calls of a render pass.
type Drawer interface {
	// BindBucket selects the atlas page of the following draws.
	BindBucket(i int)
	// DrawRange draws count vertices of vb starting at vertex first.
	DrawRange(vb gpu.Handle, first, count int)
}

// RenderNormal draws the opaque parts of the chunks returned by the last
// UpdateFrame, one atlas bucket at a time.
func (m *Manager) RenderNormal(d Drawer) {
	defer profiling.Track("chunks.RenderNormal")()
	m.renderPass(d, &m.normalOcc, &m.hasNormal, &m.checkNormal, func(c *ChunkInfo) []PartInfo {
		return c.NormalParts
	})
}

// RenderTranslucent draws the translucent parts. Call it after
// RenderNormal with blending enabled.
func (m *Manager) RenderTranslucent(d Drawer) {
	defer profiling.Track("chunks.RenderTranslucent")()
	m.renderPass(d, &m.translucentOcc, &m.hasTranslucent, &m.checkTranslucent, func(c *ChunkInfo) []PartInfo {
		return c.TranslucentParts
	})
}

func (m *Manager) renderPass(d Drawer, occ *[atlas.MaxTiles]int, has, checking *[atlas.MaxTiles]bool, parts func(*ChunkInfo) []PartInfo) {
	for i := range m.usedCount {
		// Buckets no visible chunk used since the last reset are skipped.
		if occ[i] <= 0 || !(has[i] || checking[i]) {
			continue
		}
		d.BindBucket(i)
		for _, c := range m.render {
			p := parts(c)
			if p == nil || p[i].Offset < 0 {
				continue
			}
			has[i] = true
			drawPart(d, c, p[i])
		}
		checking[i] = false
	}
}

// drawPart draws the sprite groups and face runs of p that can face the
// camera.
func drawPart(d Drawer, c *ChunkInfo, p PartInfo) {
	r := rangeBatcher{d: d, vb: c.Vb}
	off := p.Offset

	if p.SpriteCount > 0 {
		n := p.SpriteCount / 4
		groups := [4]bool{
			c.DrawXMax || c.DrawZMin,
			c.DrawXMin || c.DrawZMax,
			c.DrawXMin || c.DrawZMin,
			c.DrawXMax || c.DrawZMax,
		}
		for _, draw := range groups {
			if draw {
				r.add(off, n)
			}
			off += n
		}
	}

	faces := [6]bool{c.DrawXMin, c.DrawXMax, c.DrawZMin, c.DrawZMax, c.DrawYMin, c.DrawYMax}
	for f, n := range p.Counts {
		if faces[f] {
			r.add(off, n)
		}
		off += n
	}
	r.flush()
}

// rangeBatcher merges adjacent vertex ranges into one draw call.
type rangeBatcher struct {
	d            Drawer
	vb           gpu.Handle
	first, count int
}

func (r *rangeBatcher) add(first, count int) {
	if count == 0 {
		return
	}
	if r.count > 0 && r.first+r.count == first {
		r.count += count
		return
	}
	r.flush()
	r.first, r.count = first, count
}

func (r *rangeBatcher) flush() {
	if r.count > 0 {
		r.d.DrawRange(r.vb, r.first, r.count)
		r.count = 0
	}
}
