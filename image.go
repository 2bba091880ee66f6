package sprite

import (
	"github.com/gogpu/gg"
)

// Image is a textured quad: the leaf node that actually shows pixels
// in a 2D scene graph.
//
// Image keeps two vertex blocks. The authoritative block holds the
// quad geometry with texture coordinates in canonical [0,1] quad
// space; every mutation writes there. The cache block holds a copy
// with the texture's coordinate adjustment applied, rebuilt lazily on
// the next export after a mutation. The adjustment is applied exactly
// once per rebuild: applying it twice would compound the atlas
// mapping and sample the wrong pixels.
//
// Image is not safe for concurrent use. If a future renderer exports
// vertex data from multiple goroutines, the rebuild path must be
// serialized so at most one rebuild happens per invalidation cycle.
type Image struct {
	*Quad

	texture   Texture
	smoothing SmoothingMode

	// cache mirrors the authoritative block with texture adjustment
	// applied. Valid only while cacheValid is true.
	cache      *VertexData
	cacheValid bool
}

// ImageOption configures an Image during creation.
type ImageOption func(*Image)

// WithSmoothing sets the initial smoothing mode. An unrecognized mode
// makes NewImage fail with ErrInvalidSmoothing.
func WithSmoothing(mode SmoothingMode) ImageOption {
	return func(img *Image) {
		img.smoothing = mode
	}
}

// NewImage creates a quad sized and parameterized for tex.
//
// The quad covers (0,0)-(width,height), where width and height come
// from the texture's frame when present and its intrinsic size
// otherwise. Corner texture coordinates are the canonical
// (0,0),(1,0),(0,1),(1,1). The vertex blocks adopt the texture's
// premultiplied-alpha convention.
//
// Returns ErrNilTexture if tex is nil; no partially constructed Image
// escapes.
func NewImage(tex Texture, opts ...ImageOption) (*Image, error) {
	if tex == nil {
		return nil, ErrNilTexture
	}
	pma := tex.PremultipliedAlpha()
	img := &Image{
		Quad:      newBaseQuad(pma),
		texture:   tex,
		smoothing: DefaultSmoothing,
		cache:     NewVertexData(quadVertexCount, pma),
	}
	img.Quad.onChange = img.invalidateCache
	width, height := textureSize(tex)
	img.setCorners(width, height)
	for _, opt := range opts {
		opt(img)
	}
	if !img.smoothing.IsValid() {
		return nil, ErrInvalidSmoothing
	}
	return img, nil
}

// invalidateCache marks the derived cache stale. Called after every
// mutation of the authoritative block, the texture reference, or the
// texture coordinates.
func (img *Image) invalidateCache() {
	img.cacheValid = false
}

// Texture returns the current texture.
func (img *Image) Texture() Texture {
	return img.texture
}

// SetTexture replaces the image's texture.
//
// Assigning the texture the image already has is a no-op and leaves
// the cache untouched. Otherwise the new texture's alpha convention
// is propagated to both vertex blocks and the cache is invalidated.
// Returns ErrNilTexture if tex is nil; the image is left unchanged.
func (img *Image) SetTexture(tex Texture) error {
	if tex == nil {
		return ErrNilTexture
	}
	if tex == img.texture {
		return nil
	}
	img.texture = tex

	pma := tex.PremultipliedAlpha()
	img.vertexData.SetPremultipliedAlpha(pma, true)
	// The cache is about to be fully rebuilt, so its colors need no
	// conversion: only the flag must match the texture.
	img.cache.SetPremultipliedAlpha(pma, false)
	img.invalidateCache()
	return nil
}

// ReadjustSize rewrites the corner positions to match the current
// texture's frame (or intrinsic size). Texture coordinates are left
// as they are. Call it after swapping in a texture of different
// dimensions.
func (img *Image) ReadjustSize() {
	width, height := textureSize(img.texture)
	img.setCorners(width, height)
}

// SetTexCoord sets the canonical texture coordinate of one vertex in
// the authoritative block.
func (img *Image) SetTexCoord(i int, u, v float64) error {
	if err := img.vertexData.SetTexCoord(i, u, v); err != nil {
		return err
	}
	img.invalidateCache()
	return nil
}

// SetTexCoordPoint is SetTexCoord taking the coordinate as a point.
func (img *Image) SetTexCoordPoint(i int, p gg.Point) error {
	return img.SetTexCoord(i, p.X, p.Y)
}

// TexCoord returns the canonical (pre-adjustment) texture coordinate
// of one vertex, independent of the cache state.
func (img *Image) TexCoord(i int) (u, v float64, err error) {
	return img.vertexData.TexCoord(i)
}

// Smoothing returns the current smoothing mode.
func (img *Image) Smoothing() SmoothingMode {
	return img.smoothing
}

// SetSmoothing sets the texture smoothing mode. An unrecognized mode
// returns ErrInvalidSmoothing and leaves the previous mode unchanged.
func (img *Image) SetSmoothing(mode SmoothingMode) error {
	if !mode.IsValid() {
		return ErrInvalidSmoothing
	}
	img.smoothing = mode
	return nil
}

// CopyVertexDataTo copies the image's render-ready vertex data into
// dst at offset, rebuilding the cache first if it is stale.
func (img *Image) CopyVertexDataTo(dst *VertexData, offset int) error {
	return img.CopyVertexDataTransformedTo(dst, offset, nil)
}

// CopyVertexDataTransformedTo copies the image's render-ready vertex
// data into dst at offset, applying m to the copied positions. A nil
// m is the identity. Texture coordinates and colors are copied
// untransformed.
//
// This is the only place the texture's coordinate adjustment runs: a
// stale cache is rebuilt from the authoritative block, adjusted once,
// and reused by every subsequent export until the next mutation.
func (img *Image) CopyVertexDataTransformedTo(dst *VertexData, offset int, m *gg.Matrix) error {
	if !img.cacheValid {
		if err := img.rebuildCache(); err != nil {
			return err
		}
	}
	return img.cache.CopyTransformedTo(dst, offset, m)
}

// rebuildCache refreshes the cache from the authoritative block and
// applies the texture's coordinate adjustment exactly once.
func (img *Image) rebuildCache() error {
	if err := img.vertexData.CopyTo(img.cache, 0); err != nil {
		return err
	}
	if err := img.texture.AdjustVertexData(img.cache, 0, quadVertexCount); err != nil {
		return err
	}
	img.cacheValid = true
	Logger().Debug("sprite: rebuilt image vertex cache")
	return nil
}

// Render submits the image for batched drawing. The effective opacity
// is the image's own alpha combined multiplicatively with parentAlpha.
// The current texture and smoothing mode are passed as they are at
// call time.
func (img *Image) Render(support RenderSupport, parentAlpha float64) error {
	return support.BatchQuad(img, img.alpha*parentAlpha, img.texture, img.smoothing)
}
