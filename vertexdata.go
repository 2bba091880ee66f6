package sprite

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Vertex is a single vertex record: a position, a texture coordinate
// in [0,1]x[0,1] quad space, and an RGBA color. Whether the color is
// premultiplied is tracked on the owning VertexData block, not per
// vertex.
type Vertex struct {
	Position gg.Point
	TexCoord gg.Point
	Color    gg.RGBA
}

// VertexData is a fixed-size ordered block of vertices. It supports
// in-place mutation, whole-block copies, and copies that apply an
// affine transform to positions only.
//
// All vertices in one block share the same premultiplied-alpha
// convention. Copy operations transfer raw values and leave the
// destination's convention untouched; the caller keeps conventions
// aligned between blocks.
type VertexData struct {
	vertices      []Vertex
	premultiplied bool
}

// NewVertexData creates a block with the given fixed vertex count and
// alpha convention. All vertices start zeroed.
func NewVertexData(count int, premultiplied bool) *VertexData {
	return &VertexData{
		vertices:      make([]Vertex, count),
		premultiplied: premultiplied,
	}
}

// NumVertices returns the block's fixed vertex count.
func (vd *VertexData) NumVertices() int {
	return len(vd.vertices)
}

// PremultipliedAlpha returns true if stored colors are premultiplied.
func (vd *VertexData) PremultipliedAlpha() bool {
	return vd.premultiplied
}

// checkIndex validates a vertex index against the fixed count.
func (vd *VertexData) checkIndex(i int) error {
	if i < 0 || i >= len(vd.vertices) {
		return fmt.Errorf("%w: index %d, count %d", ErrVertexIndexOutOfRange, i, len(vd.vertices))
	}
	return nil
}

// SetPosition sets the position of one vertex.
func (vd *VertexData) SetPosition(i int, x, y float64) error {
	if err := vd.checkIndex(i); err != nil {
		return err
	}
	vd.vertices[i].Position = gg.Point{X: x, Y: y}
	return nil
}

// Position returns the position of one vertex.
func (vd *VertexData) Position(i int) (x, y float64, err error) {
	if err := vd.checkIndex(i); err != nil {
		return 0, 0, err
	}
	p := vd.vertices[i].Position
	return p.X, p.Y, nil
}

// SetTexCoord sets the texture coordinate of one vertex.
func (vd *VertexData) SetTexCoord(i int, u, v float64) error {
	if err := vd.checkIndex(i); err != nil {
		return err
	}
	vd.vertices[i].TexCoord = gg.Point{X: u, Y: v}
	return nil
}

// TexCoord returns the texture coordinate of one vertex.
func (vd *VertexData) TexCoord(i int) (u, v float64, err error) {
	if err := vd.checkIndex(i); err != nil {
		return 0, 0, err
	}
	t := vd.vertices[i].TexCoord
	return t.X, t.Y, nil
}

// SetColor sets the color of one vertex. The color is given straight
// (non-premultiplied) and stored according to the block's convention.
func (vd *VertexData) SetColor(i int, c gg.RGBA) error {
	if err := vd.checkIndex(i); err != nil {
		return err
	}
	if vd.premultiplied {
		c = c.Premultiply()
	}
	vd.vertices[i].Color = c
	return nil
}

// Color returns the color of one vertex as a straight
// (non-premultiplied) color, regardless of the block's convention.
func (vd *VertexData) Color(i int) (gg.RGBA, error) {
	if err := vd.checkIndex(i); err != nil {
		return gg.RGBA{}, err
	}
	c := vd.vertices[i].Color
	if vd.premultiplied {
		c = c.Unpremultiply()
	}
	return c, nil
}

// ScaleAlpha multiplies the alpha of every vertex by factor. Under the
// premultiplied convention the color channels are scaled as well, so
// the stored values stay consistent.
func (vd *VertexData) ScaleAlpha(factor float64) {
	for i := range vd.vertices {
		c := &vd.vertices[i].Color
		if vd.premultiplied {
			c.R *= factor
			c.G *= factor
			c.B *= factor
		}
		c.A *= factor
	}
}

// SetPremultipliedAlpha changes the block's alpha convention. When
// convert is true, stored colors are numerically converted between
// conventions; when false only the flag changes, which is intended
// for freshly allocated blocks whose colors carry no meaning yet.
func (vd *VertexData) SetPremultipliedAlpha(premultiplied, convert bool) {
	if premultiplied == vd.premultiplied {
		return
	}
	if convert {
		for i := range vd.vertices {
			if premultiplied {
				vd.vertices[i].Color = vd.vertices[i].Color.Premultiply()
			} else {
				vd.vertices[i].Color = vd.vertices[i].Color.Unpremultiply()
			}
		}
	}
	vd.premultiplied = premultiplied
}

// checkCopy validates that this block fits into dst at offset.
func (vd *VertexData) checkCopy(dst *VertexData, offset int) error {
	if dst == nil {
		return ErrNilVertexData
	}
	if offset < 0 || offset+len(vd.vertices) > len(dst.vertices) {
		return fmt.Errorf("%w: need %d at offset %d, have %d",
			ErrDestinationTooSmall, len(vd.vertices), offset, len(dst.vertices))
	}
	return nil
}

// CopyTo copies the block's full contents (positions, texture
// coordinates, colors) into dst starting at offset. Positions are not
// transformed.
func (vd *VertexData) CopyTo(dst *VertexData, offset int) error {
	if err := vd.checkCopy(dst, offset); err != nil {
		return err
	}
	copy(dst.vertices[offset:], vd.vertices)
	return nil
}

// CopyTransformedTo is CopyTo with an affine transform applied to each
// copied position. Texture coordinates and colors are copied
// untransformed. A nil transform is equivalent to the identity.
func (vd *VertexData) CopyTransformedTo(dst *VertexData, offset int, m *gg.Matrix) error {
	if m == nil {
		return vd.CopyTo(dst, offset)
	}
	if err := vd.checkCopy(dst, offset); err != nil {
		return err
	}
	for i, v := range vd.vertices {
		v.Position = m.TransformPoint(v.Position)
		dst.vertices[offset+i] = v
	}
	return nil
}

// Bounds returns the bounding box of all vertex positions, transformed
// by m when m is non-nil.
func (vd *VertexData) Bounds(m *gg.Matrix) gg.Rect {
	if len(vd.vertices) == 0 {
		return gg.Rect{}
	}
	first := vd.vertices[0].Position
	if m != nil {
		first = m.TransformPoint(first)
	}
	bounds := gg.Rect{Min: first, Max: first}
	for _, v := range vd.vertices[1:] {
		p := v.Position
		if m != nil {
			p = m.TransformPoint(p)
		}
		bounds = bounds.Union(gg.Rect{Min: p, Max: p})
	}
	return bounds
}
