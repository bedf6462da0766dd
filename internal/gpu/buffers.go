// Package gpu owns the vertex buffers and atlas textures of chunk meshes.
package gpu

import "voxelmesh/internal/meshing"

// Handle identifies a vertex buffer. Zero is never a live buffer.
type Handle uint32

// Buffers creates and destroys chunk vertex buffers.
type Buffers interface {
	CreateVertexBuffer(verts []meshing.Vertex) (Handle, error)
	DeleteVertexBuffer(h Handle)
}
