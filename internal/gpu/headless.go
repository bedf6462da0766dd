package gpu

import (
	"errors"
	"log"

	"voxelmesh/internal/meshing"
)

// ErrInjected is returned by Headless after FailNext was set.
var ErrInjected = errors.New("gpu: injected buffer failure")

// Headless keeps vertex buffers in memory. It backs the headless runner and
// the tests.
type Headless struct {
	live map[Handle]int
	next Handle

	Created int
	Deleted int
	// FailNext makes the next CreateVertexBuffer fail with ErrInjected.
	FailNext bool
}

func NewHeadless() *Headless {
	return &Headless{live: make(map[Handle]int)}
}

func (h *Headless) CreateVertexBuffer(verts []meshing.Vertex) (Handle, error) {
	if h.FailNext {
		h.FailNext = false
		return 0, ErrInjected
	}
	if len(verts) == 0 {
		return 0, errors.New("gpu: empty vertex buffer")
	}
	h.next++
	h.live[h.next] = len(verts)
	h.Created++
	return h.next, nil
}

func (h *Headless) DeleteVertexBuffer(vb Handle) {
	if vb == 0 {
		return
	}
	if _, ok := h.live[vb]; !ok {
		log.Printf("gpu: delete of unknown buffer %d", vb)
		return
	}
	delete(h.live, vb)
	h.Deleted++
}

// Live returns the number of buffers not yet deleted.
func (h *Headless) Live() int { return len(h.live) }

// LiveVertices returns the vertices held by live buffers.
func (h *Headless) LiveVertices() int {
	n := 0
	for _, c := range h.live {
		n += c
	}
	return n
}

// Size returns the vertex count of a live buffer, or 0.
func (h *Headless) Size(vb Handle) int { return h.live[vb] }
