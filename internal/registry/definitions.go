package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/blocks.json
var defaultBlocksJSON []byte

//go:embed data/blocks.schema.json
var blocksSchemaJSON string

// DrawStyle decides how a block is meshed and which pass it lands in.
type DrawStyle uint8

const (
	DrawOpaque DrawStyle = iota
	DrawTransparent
	DrawTransparentThick
	DrawTranslucent
	DrawGas
	DrawSprite
)

var drawNames = map[string]DrawStyle{
	"opaque":           DrawOpaque,
	"transparent":      DrawTransparent,
	"transparentThick": DrawTransparentThick,
	"translucent":      DrawTranslucent,
	"gas":              DrawGas,
	"sprite":           DrawSprite,
}

var faceKeys = map[string]world.Face{
	"xmin": world.FaceXMin, "xmax": world.FaceXMax,
	"zmin": world.FaceZMin, "zmax": world.FaceZMax,
	"ymin": world.FaceYMin, "ymax": world.FaceYMax,
}

// Definition describes one block type.
type Definition struct {
	ID       world.BlockID
	Name     string
	Draw     DrawStyle
	Textures [world.FaceCount]atlas.TextureLoc
	// Min and Max are the collision bounds in blocks, within [0,1].
	Min, Max     mgl32.Vec3
	FullBright   bool
	BlocksLight  bool
	Liquid       bool
	SpriteOffset uint8
	Tinted       bool
	Tint         [3]uint8
	// Stretch holds per-face merge bits. Zero with HasStretch unset means
	// the bits are derived from the bounds.
	Stretch    uint8
	HasStretch bool
}

type jsonTextures struct {
	All    *int `json:"all"`
	Top    *int `json:"top"`
	Side   *int `json:"side"`
	Bottom *int `json:"bottom"`
	XMin   *int `json:"xmin"`
	XMax   *int `json:"xmax"`
	ZMin   *int `json:"zmin"`
	ZMax   *int `json:"zmax"`
}

type jsonBlock struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Draw         string       `json:"draw"`
	Textures     jsonTextures `json:"textures"`
	Min          *[3]float32  `json:"min"`
	Max          *[3]float32  `json:"max"`
	FullBright   bool         `json:"fullBright"`
	BlocksLight  *bool        `json:"blocksLight"`
	Liquid       bool         `json:"liquid"`
	SpriteOffset uint8        `json:"spriteOffset"`
	Tint         string       `json:"tint"`
	Stretch      []string     `json:"stretch"`
}

type jsonFile struct {
	Blocks []jsonBlock `json:"blocks"`
}

var blocksSchema = jsonschema.MustCompileString("blocks.schema.json", blocksSchemaJSON)

// DefaultDefinitions returns the built-in classic block set.
func DefaultDefinitions() []Definition {
	defs, err := ParseDefinitions(defaultBlocksJSON)
	if err != nil {
		panic(fmt.Sprintf("registry: built-in definitions: %v", err))
	}
	return defs
}

// LoadDefinitions reads and validates a block definition file.
func LoadDefinitions(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defs, err := ParseDefinitions(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// ParseDefinitions validates raw JSON against the block schema and decodes it.
func ParseDefinitions(raw []byte) ([]Definition, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("blocks json: %w", err)
	}
	if err := blocksSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("blocks schema: %w", err)
	}
	var f jsonFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("blocks json: %w", err)
	}

	seen := make(map[int]string, len(f.Blocks))
	defs := make([]Definition, 0, len(f.Blocks))
	for _, jb := range f.Blocks {
		if prev, dup := seen[jb.ID]; dup {
			return nil, fmt.Errorf("block id %d defined twice (%s, %s)", jb.ID, prev, jb.Name)
		}
		seen[jb.ID] = jb.Name
		def, err := jb.definition()
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", jb.Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (jb jsonBlock) definition() (Definition, error) {
	def := Definition{
		ID:           world.BlockID(jb.ID),
		Name:         jb.Name,
		Draw:         drawNames[jb.Draw],
		Min:          mgl32.Vec3{0, 0, 0},
		Max:          mgl32.Vec3{1, 1, 1},
		FullBright:   jb.FullBright,
		Liquid:       jb.Liquid,
		SpriteOffset: jb.SpriteOffset,
	}
	if jb.Min != nil {
		def.Min = mgl32.Vec3{jb.Min[0] / 16, jb.Min[1] / 16, jb.Min[2] / 16}
	}
	if jb.Max != nil {
		def.Max = mgl32.Vec3{jb.Max[0] / 16, jb.Max[1] / 16, jb.Max[2] / 16}
	}
	for i := 0; i < 3; i++ {
		if def.Min[i] >= def.Max[i] {
			return def, fmt.Errorf("empty bounds %v..%v", def.Min, def.Max)
		}
	}

	if jb.BlocksLight != nil {
		def.BlocksLight = *jb.BlocksLight
	} else {
		def.BlocksLight = def.Draw == DrawOpaque || def.Draw == DrawTranslucent
	}

	tex := jb.Textures
	pick := func(specific, group *int) atlas.TextureLoc {
		switch {
		case specific != nil:
			return atlas.TextureLoc(*specific)
		case group != nil:
			return atlas.TextureLoc(*group)
		case tex.All != nil:
			return atlas.TextureLoc(*tex.All)
		}
		return 0
	}
	def.Textures[world.FaceXMin] = pick(tex.XMin, tex.Side)
	def.Textures[world.FaceXMax] = pick(tex.XMax, tex.Side)
	def.Textures[world.FaceZMin] = pick(tex.ZMin, tex.Side)
	def.Textures[world.FaceZMax] = pick(tex.ZMax, tex.Side)
	def.Textures[world.FaceYMin] = pick(nil, tex.Bottom)
	def.Textures[world.FaceYMax] = pick(nil, tex.Top)

	if jb.Tint != "" {
		rgb, err := strconv.ParseUint(strings.TrimPrefix(jb.Tint, "#"), 16, 32)
		if err != nil {
			return def, fmt.Errorf("tint %q: %w", jb.Tint, err)
		}
		def.Tinted = true
		def.Tint = [3]uint8{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb)}
	}

	if jb.Stretch != nil {
		def.HasStretch = true
		for _, name := range jb.Stretch {
			def.Stretch |= 1 << faceKeys[name]
		}
	}
	return def, nil
}
