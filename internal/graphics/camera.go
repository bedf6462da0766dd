package graphics

import (
	"math"

	"voxelmesh/internal/chunks"

	"github.com/go-gl/mathgl/mgl32"
)

const mouseSensitivity = 0.1

// FlyCamera is a free camera without collision. Yaw and Pitch are in
// degrees; yaw 0 looks along +X.
type FlyCamera struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	lastX, lastY float64
	firstMouse   bool
}

func NewFlyCamera(width, height int) *FlyCamera {
	return &FlyCamera{
		AspectRatio: float32(width) / float32(height),
		FOV:         70.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		firstMouse:  true,
	}
}

// Resize updates the aspect ratio after a framebuffer change.
func (c *FlyCamera) Resize(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

// HandleMouseMovement turns the camera by the cursor offset since the last call.
func (c *FlyCamera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	xoffset := (xpos - c.lastX) * mouseSensitivity
	yoffset := (c.lastY - ypos) * mouseSensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw = float32(math.Mod(float64(c.Yaw)+xoffset, 360))
	c.Pitch = mgl32.Clamp(c.Pitch+float32(yoffset), -89, 89)
}

// ResetMouse makes the next HandleMouseMovement only record the cursor.
func (c *FlyCamera) ResetMouse() {
	c.firstMouse = true
}

func (c *FlyCamera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Move flies along the horizontal heading. forward, right and up are in
// [-1, 1]; speed is in blocks per second.
func (c *FlyCamera) Move(dt float64, forward, right, up, speed float32) {
	y := float64(mgl32.DegToRad(c.Yaw))
	heading := mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
	side := mgl32.Vec3{-heading.Z(), 0, heading.X()}

	dir := heading.Mul(forward).Add(side.Mul(right)).Add(mgl32.Vec3{0, up, 0})
	if dir.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(speed * float32(dt)))
}

func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *FlyCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *FlyCamera) ViewProj() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// ChunkCamera is the view state the chunk manager culls against.
func (c *FlyCamera) ChunkCamera() chunks.Camera {
	return chunks.Camera{
		Position: c.Position,
		Yaw:      c.Yaw,
		Pitch:    c.Pitch,
		ViewProj: c.ViewProj(),
	}
}
