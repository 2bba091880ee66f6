package sprite

import (
	"github.com/gogpu/gg"
)

// SubTexture is a view into a region of a parent texture, the building
// block of texture atlases. The region is given in parent pixel
// coordinates. A SubTexture may be marked rotated when the atlas
// packer stored the image rotated 90 degrees clockwise; Width and
// Height then report the unrotated (logical) dimensions and
// AdjustVertexData undoes the rotation in texture space.
//
// SubTextures nest: the parent may itself be a SubTexture, and
// coordinate adjustment composes through the chain.
type SubTexture struct {
	parent  Texture
	region  gg.Rect
	rotated bool
}

// NewSubTexture creates a view of region within parent.
// Returns ErrNilTexture when parent is nil and ErrRegionOutOfBounds
// when the region does not lie inside the parent.
func NewSubTexture(parent Texture, region gg.Rect, rotated bool) (*SubTexture, error) {
	if parent == nil {
		return nil, ErrNilTexture
	}
	if region.Min.X < 0 || region.Min.Y < 0 ||
		region.Max.X > parent.Width() || region.Max.Y > parent.Height() ||
		region.Width() <= 0 || region.Height() <= 0 {
		return nil, ErrRegionOutOfBounds
	}
	return &SubTexture{parent: parent, region: region, rotated: rotated}, nil
}

// Parent returns the texture this SubTexture is a view of.
func (t *SubTexture) Parent() Texture {
	return t.parent
}

// Region returns the view rectangle in parent pixel coordinates.
func (t *SubTexture) Region() gg.Rect {
	return t.region
}

// Rotated returns true if the region pixels are stored rotated
// 90 degrees clockwise.
func (t *SubTexture) Rotated() bool {
	return t.rotated
}

// Width returns the logical width in pixels.
func (t *SubTexture) Width() float64 {
	if t.rotated {
		return t.region.Height()
	}
	return t.region.Width()
}

// Height returns the logical height in pixels.
func (t *SubTexture) Height() float64 {
	if t.rotated {
		return t.region.Width()
	}
	return t.region.Height()
}

// Frame reports no frame: a SubTexture's logical size is its region.
func (t *SubTexture) Frame() (gg.Rect, bool) {
	return gg.Rect{}, false
}

// PremultipliedAlpha returns the parent's alpha convention.
func (t *SubTexture) PremultipliedAlpha() bool {
	return t.parent.PremultipliedAlpha()
}

// AdjustVertexData maps canonical [0,1] quad-space coordinates into
// the parent's [0,1] space, undoing the stored rotation first, then
// delegates to the parent so nested sub-textures compose.
func (t *SubTexture) AdjustVertexData(vd *VertexData, index, count int) error {
	if err := checkAdjustRange(vd, index, count); err != nil {
		return err
	}
	parentW, parentH := t.parent.Width(), t.parent.Height()
	for i := index; i < index+count; i++ {
		u, v, err := vd.TexCoord(i)
		if err != nil {
			return err
		}
		if t.rotated {
			// Pixels are stored rotated 90 degrees clockwise, so the
			// logical top-left sits at the region's top-right.
			u, v = 1-v, u
		}
		pu := (t.region.Min.X + u*t.region.Width()) / parentW
		pv := (t.region.Min.Y + v*t.region.Height()) / parentH
		if err := vd.SetTexCoord(i, pu, pv); err != nil {
			return err
		}
	}
	return t.parent.AdjustVertexData(vd, index, count)
}

// Root returns the texture at the bottom of the parent chain.
func (t *SubTexture) Root() Texture {
	tex := t.parent
	for {
		sub, ok := tex.(*SubTexture)
		if !ok {
			return tex
		}
		tex = sub.parent
	}
}

// Ensure SubTexture implements Texture.
var _ Texture = (*SubTexture)(nil)
