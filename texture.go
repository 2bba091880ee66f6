package sprite

import "github.com/gogpu/gg"

// Texture is the capability a texture must provide to the quad layer.
// Implementations include PixmapTexture (a root texture backed by
// pixel data) and SubTexture (a region of another texture). Texture
// lifetime is managed by the caller; an Image only borrows its
// texture and never releases it.
type Texture interface {
	// Width returns the logical width of the texture in pixels.
	Width() float64

	// Height returns the logical height of the texture in pixels.
	Height() float64

	// Frame returns the frame rectangle and true when the texture has
	// one. A quad sized from this texture uses the frame dimensions
	// instead of Width/Height.
	Frame() (gg.Rect, bool)

	// PremultipliedAlpha returns true if the texture's pixel data is
	// stored with premultiplied alpha.
	PremultipliedAlpha() bool

	// AdjustVertexData rewrites the texture coordinates of count
	// vertices starting at index so that coordinates in canonical
	// [0,1] quad space map onto the texture's actual placement
	// (sub-region, rotation). Callers must invoke it exactly once per
	// vertex block: the adjustment is not idempotent and applying it
	// to already-adjusted coordinates compounds the mapping.
	AdjustVertexData(vd *VertexData, index, count int) error
}

// textureSize returns the dimensions a quad showing t should have:
// the frame rectangle when present, the intrinsic size otherwise.
func textureSize(t Texture) (width, height float64) {
	if frame, ok := t.Frame(); ok {
		return frame.Width(), frame.Height()
	}
	return t.Width(), t.Height()
}
