package sprite

import (
	"fmt"

	"github.com/gogpu/gg"
)

// RenderSupport accepts quads for batched drawing. Implementations
// own draw submission; the quad layer only guarantees that the vertex
// data handed over is texture-adjusted and positioned.
type RenderSupport interface {
	// BatchQuad submits one quad with its effective opacity, the
	// texture to sample, and the smoothing mode to sample it with.
	// It may be called every frame.
	BatchQuad(img *Image, opacity float64, tex Texture, smoothing SmoothingMode) error
}

// floatsPerVertex is the interleaved vertex layout size:
// position (x, y), texture coordinate (u, v), color (r, g, b, a).
const floatsPerVertex = 8

// indicesPerQuad is two counterclockwise triangles per quad.
const indicesPerQuad = 6

// maxQuadsPerBatch bounds a batch by its 16-bit index space.
const maxQuadsPerBatch = (1 << 16) / quadVertexCount

// DrawCall is one GPU draw spanning a contiguous index range that
// shares a texture and smoothing mode.
type DrawCall struct {
	// Texture is the texture bound for this call.
	Texture Texture

	// Smoothing selects the sampler filtering for this call.
	Smoothing SmoothingMode

	// IndexOffset is the first index of the call within Indices.
	IndexOffset int

	// IndexCount is the number of indices drawn by the call.
	IndexCount int
}

// QuadBatch is a RenderSupport that accumulates quads into an
// interleaved float32 vertex stream and a uint16 index buffer, split
// into draw calls whenever the texture or smoothing mode changes.
//
// Buffers grow on demand and are reused across frames via Reset, so a
// steady scene settles into zero per-frame allocation.
type QuadBatch struct {
	handle    DeviceHandle
	modelview gg.Matrix

	vertices  []float32
	indices   []uint16
	calls     []DrawCall
	quadCount int

	// scratch receives each quad's exported vertex data before
	// conversion to the interleaved layout.
	scratch *VertexData
}

// BatchOption configures a QuadBatch during creation.
type BatchOption func(*QuadBatch)

// WithDeviceHandle attaches the host GPU device used when uploading
// the batch. Without one the batch is CPU-only.
func WithDeviceHandle(h DeviceHandle) BatchOption {
	return func(b *QuadBatch) {
		b.handle = h
	}
}

// WithCapacity pre-allocates buffer space for the given quad count.
func WithCapacity(quads int) BatchOption {
	return func(b *QuadBatch) {
		if quads <= 0 {
			return
		}
		b.vertices = make([]float32, 0, quads*quadVertexCount*floatsPerVertex)
		b.indices = make([]uint16, 0, quads*indicesPerQuad)
	}
}

// NewQuadBatch creates an empty batch with an identity modelview
// transform and no GPU device.
func NewQuadBatch(opts ...BatchOption) *QuadBatch {
	b := &QuadBatch{
		handle:    NullDeviceHandle{},
		modelview: gg.Identity(),
		scratch:   NewVertexData(quadVertexCount, false),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetModelview sets the transform applied to quad positions as they
// are batched.
func (b *QuadBatch) SetModelview(m gg.Matrix) {
	b.modelview = m
}

// Modelview returns the current modelview transform.
func (b *QuadBatch) Modelview() gg.Matrix {
	return b.modelview
}

// DeviceHandle returns the host GPU device handle.
func (b *QuadBatch) DeviceHandle() DeviceHandle {
	return b.handle
}

// BatchQuad appends one quad to the batch.
//
// The quad's render-ready vertex data is exported with the batch's
// modelview transform applied, converted to the interleaved layout,
// and indexed as two triangles. Opacity scales the vertex alpha; under
// the premultiplied convention the color channels are scaled as well.
func (b *QuadBatch) BatchQuad(img *Image, opacity float64, tex Texture, smoothing SmoothingMode) error {
	if tex == nil {
		return ErrNilTexture
	}
	if !smoothing.IsValid() {
		return ErrInvalidSmoothing
	}
	if b.quadCount >= maxQuadsPerBatch {
		return fmt.Errorf("%w: %d quads", ErrBatchFull, b.quadCount)
	}
	if err := img.CopyVertexDataTransformedTo(b.scratch, 0, &b.modelview); err != nil {
		return err
	}

	premultiplied := tex.PremultipliedAlpha()
	base := b.quadCount * quadVertexCount
	for i := 0; i < quadVertexCount; i++ {
		v := b.scratch.vertices[i]
		r, g, bl, a := v.Color.R, v.Color.G, v.Color.B, v.Color.A
		a *= opacity
		if premultiplied {
			r *= opacity
			g *= opacity
			bl *= opacity
		}
		b.vertices = append(b.vertices,
			float32(v.Position.X), float32(v.Position.Y),
			float32(v.TexCoord.X), float32(v.TexCoord.Y),
			float32(r), float32(g), float32(bl), float32(a))
	}

	// Two CCW triangles: TL-BL-TR and TR-BL-BR.
	b.indices = append(b.indices,
		uint16(base), uint16(base+2), uint16(base+1),
		uint16(base+1), uint16(base+2), uint16(base+3))
	b.quadCount++

	if n := len(b.calls); n > 0 && b.calls[n-1].Texture == tex && b.calls[n-1].Smoothing == smoothing {
		b.calls[n-1].IndexCount += indicesPerQuad
		return nil
	}
	b.calls = append(b.calls, DrawCall{
		Texture:     tex,
		Smoothing:   smoothing,
		IndexOffset: (b.quadCount - 1) * indicesPerQuad,
		IndexCount:  indicesPerQuad,
	})
	Logger().Debug("sprite: new draw call",
		"calls", len(b.calls), "smoothing", smoothing.String())
	return nil
}

// Reset clears the batch for the next frame without releasing buffer
// memory.
func (b *QuadBatch) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.calls = b.calls[:0]
	b.quadCount = 0
}

// QuadCount returns the number of quads batched since the last Reset.
func (b *QuadBatch) QuadCount() int {
	return b.quadCount
}

// Vertices returns the interleaved vertex stream
// [x y u v r g b a] per vertex, four vertices per quad.
func (b *QuadBatch) Vertices() []float32 {
	return b.vertices
}

// Indices returns the triangle index buffer, six indices per quad.
func (b *QuadBatch) Indices() []uint16 {
	return b.indices
}

// DrawCalls returns the draw call segmentation of the batch.
func (b *QuadBatch) DrawCalls() []DrawCall {
	return b.calls
}

// Ensure QuadBatch implements RenderSupport.
var _ RenderSupport = (*QuadBatch)(nil)
