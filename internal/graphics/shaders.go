package graphics

import (
	_ "embed"
	"fmt"
)

var (
	//go:embed shaders/chunk.vert
	chunkVertexSource string
	//go:embed shaders/chunk.frag
	chunkFragmentSource string
	//go:embed shaders/text.vert
	textVertexSource string
	//go:embed shaders/text.frag
	textFragmentSource string
)

// ChunkShader draws chunk meshes from the terrain texture array.
type ChunkShader struct {
	*Shader
	// FirstLayer receives the first texture layer of the bound atlas bucket.
	FirstLayer int32
}

func NewChunkShader() (*ChunkShader, error) {
	s, err := NewShader(chunkVertexSource, chunkFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}
	s.Use()
	s.SetInt("uTerrain", 0)
	return &ChunkShader{Shader: s, FirstLayer: s.Uniform("uFirstLayer")}, nil
}

// Frame sets the per-frame uniforms. With a zero density fog is linear and
// reaches full strength at fogEnd, otherwise it is exponential.
func (s *ChunkShader) Frame(c *FlyCamera, fogCol [3]float32, fogEnd, fogDensity float32) {
	s.Use()
	vp := c.ViewProj()
	s.SetMatrix4("uViewProj", &vp[0])
	s.SetVector3("uCamPos", c.Position.X(), c.Position.Y(), c.Position.Z())
	s.SetVector3("uFogCol", fogCol[0], fogCol[1], fogCol[2])
	s.SetFloat("uFogEnd", fogEnd)
	s.SetFloat("uFogDensity", fogDensity)
}

// AlphaTest toggles discarding of transparent texels.
func (s *ChunkShader) AlphaTest(on bool) {
	v := int32(0)
	if on {
		v = 1
	}
	s.SetInt("uAlphaTest", v)
}
