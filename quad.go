package sprite

import (
	"github.com/gogpu/gg"
)

// quadVertexCount is the fixed vertex count of a quad block, in the
// order top-left, top-right, bottom-left, bottom-right.
const quadVertexCount = 4

// Quad is a four-vertex rectangular renderable. It owns the
// authoritative vertex block for its geometry and an opacity value,
// and provides per-vertex color access and copy operations. Textured
// behavior is layered on top by Image through composition.
type Quad struct {
	vertexData *VertexData
	alpha      float64

	// onChange, when set, is called after any mutation of the vertex
	// block. Image uses it to invalidate its derived cache.
	onChange func()
}

// NewQuad creates a solid-color quad covering (0,0)-(width,height).
func NewQuad(width, height float64, color gg.RGBA, premultiplied bool) *Quad {
	q := newBaseQuad(premultiplied)
	q.setCorners(width, height)
	for i := 0; i < quadVertexCount; i++ {
		_ = q.vertexData.SetColor(i, color)
	}
	return q
}

// newBaseQuad allocates a quad block with canonical corner texture
// coordinates and white vertex colors.
func newBaseQuad(premultiplied bool) *Quad {
	vd := NewVertexData(quadVertexCount, premultiplied)
	_ = vd.SetTexCoord(0, 0, 0)
	_ = vd.SetTexCoord(1, 1, 0)
	_ = vd.SetTexCoord(2, 0, 1)
	_ = vd.SetTexCoord(3, 1, 1)
	for i := 0; i < quadVertexCount; i++ {
		_ = vd.SetColor(i, gg.White)
	}
	return &Quad{vertexData: vd, alpha: 1}
}

// setCorners rewrites the four corner positions to the axis-aligned
// rectangle (0,0)-(width,height).
func (q *Quad) setCorners(width, height float64) {
	_ = q.vertexData.SetPosition(0, 0, 0)
	_ = q.vertexData.SetPosition(1, width, 0)
	_ = q.vertexData.SetPosition(2, 0, height)
	_ = q.vertexData.SetPosition(3, width, height)
	q.changed()
}

// changed notifies the composed owner, if any, of a vertex mutation.
func (q *Quad) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}

// Alpha returns the quad's opacity in [0,1].
func (q *Quad) Alpha() float64 {
	return q.alpha
}

// SetAlpha sets the quad's opacity, clamped to [0,1].
func (q *Quad) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	q.alpha = alpha
}

// VertexColor returns the straight (non-premultiplied) color of one
// vertex.
func (q *Quad) VertexColor(i int) (gg.RGBA, error) {
	return q.vertexData.Color(i)
}

// SetVertexColor sets the color of one vertex.
func (q *Quad) SetVertexColor(i int, c gg.RGBA) error {
	if err := q.vertexData.SetColor(i, c); err != nil {
		return err
	}
	q.changed()
	return nil
}

// SetColor sets all four vertices to the same color.
func (q *Quad) SetColor(c gg.RGBA) {
	for i := 0; i < quadVertexCount; i++ {
		_ = q.vertexData.SetColor(i, c)
	}
	q.changed()
}

// Tinted returns true if any vertex color differs from opaque white,
// which batching renderers use to pick a tinting shader variant.
func (q *Quad) Tinted() bool {
	for i := 0; i < quadVertexCount; i++ {
		c, _ := q.vertexData.Color(i)
		if c != gg.White {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of the quad's vertex positions,
// transformed by m when m is non-nil.
func (q *Quad) Bounds(m *gg.Matrix) gg.Rect {
	return q.vertexData.Bounds(m)
}

// CopyVertexDataTo copies the quad's vertex data into dst at offset.
func (q *Quad) CopyVertexDataTo(dst *VertexData, offset int) error {
	return q.vertexData.CopyTo(dst, offset)
}

// CopyVertexDataTransformedTo copies the quad's vertex data into dst
// at offset, applying m to the copied positions. A nil m is the
// identity. Image overrides both copy methods to route exports through
// its texture-adjusted cache.
func (q *Quad) CopyVertexDataTransformedTo(dst *VertexData, offset int, m *gg.Matrix) error {
	return q.vertexData.CopyTransformedTo(dst, offset, m)
}
