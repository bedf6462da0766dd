package graphics

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const textPadding = 4

var textBackground = color.RGBA{0, 0, 0, 140}

// LoadFace opens a TrueType or OpenType font at the given pixel size. An
// empty path returns the built in 7x13 bitmap face.
func LoadFace(path string, pixels float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// RasterizeLines draws white text lines on a translucent black panel sized
// to fit them.
func RasterizeLines(face font.Face, lines []string) *image.RGBA {
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	var width fixed.Int26_6
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line))
	}
	w := width.Ceil() + 2*textPadding
	h := len(lines)*lineHeight + 2*textPadding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(textBackground), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(textPadding, textPadding+i*lineHeight+ascent)
		d.DrawString(line)
	}
	return img
}

// TextOverlay draws a block of text in the top left corner of the screen.
// The panel is rasterized on the CPU and uploaded only when the text changes.
type TextOverlay struct {
	face   font.Face
	shader *Shader

	vao, vbo uint32
	texture  uint32
	w, h     int
	last     []string
}

func NewTextOverlay(face font.Face) (*TextOverlay, error) {
	shader, err := NewShader(textVertexSource, textFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("text shader: %w", err)
	}
	t := &TextOverlay{face: face, shader: shader}

	gl.GenVertexArrays(1, &t.vao)
	gl.GenBuffers(1, &t.vbo)
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return t, nil
}

func (t *TextOverlay) upload(lines []string) {
	img := RasterizeLines(t.face, lines)
	t.w, t.h = img.Bounds().Dx(), img.Bounds().Dy()
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.w), int32(t.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	t.last = append(t.last[:0], lines...)
}

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Draw renders lines on a screen of the given framebuffer size.
func (t *TextOverlay) Draw(lines []string, screenW, screenH int) {
	if len(lines) == 0 {
		return
	}
	if !sameLines(lines, t.last) {
		t.upload(lines)
	}
	x0, y0 := float32(8), float32(8)
	x1, y1 := x0+float32(t.w), y0+float32(t.h)
	verts := []float32{
		x0, y0, 0, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
		x1, y1, 1, 1,
		x1, y0, 1, 0,
		x0, y0, 0, 0,
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	t.shader.Use()
	t.shader.SetVector2("uScreen", float32(screenW), float32(screenH))
	t.shader.SetInt("uText", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (t *TextOverlay) Close() {
	gl.DeleteTextures(1, &t.texture)
	gl.DeleteBuffers(1, &t.vbo)
	gl.DeleteVertexArrays(1, &t.vao)
	t.shader.Delete()
}
