package sprite

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// PixmapTexture is a root texture backed by a gg.Pixmap. It carries
// the premultiplied-alpha convention of its pixel data, an optional
// frame rectangle, and a lazily built mipmap chain for trilinear
// sampling.
//
// A PixmapTexture maps canonical [0,1] quad space directly onto its
// full pixel area, so AdjustVertexData leaves coordinates unchanged.
// Atlas placement is the job of SubTexture.
type PixmapTexture struct {
	pixmap        *gg.Pixmap
	frame         gg.Rect
	hasFrame      bool
	premultiplied bool
	format        gputypes.TextureFormat
	scaler        draw.Scaler
	mipmaps       []*image.RGBA
}

// PixmapTextureOption configures a PixmapTexture during creation.
type PixmapTextureOption func(*PixmapTexture)

// WithFrame sets the frame rectangle. A quad sized from this texture
// uses the frame dimensions instead of the pixmap dimensions.
func WithFrame(frame gg.Rect) PixmapTextureOption {
	return func(t *PixmapTexture) {
		t.frame = frame
		t.hasFrame = true
	}
}

// WithPremultipliedAlpha declares the pixel data's alpha convention.
// The default is straight (non-premultiplied) alpha, matching
// gg.Pixmap's color model.
func WithPremultipliedAlpha(premultiplied bool) PixmapTextureOption {
	return func(t *PixmapTexture) {
		t.premultiplied = premultiplied
	}
}

// WithFormat sets the GPU pixel format reported by Descriptor.
// The default is gputypes.TextureFormatRGBA8Unorm.
func WithFormat(format gputypes.TextureFormat) PixmapTextureOption {
	return func(t *PixmapTexture) {
		t.format = format
	}
}

// WithMipmapScaler sets the scaler used to build the mipmap chain.
// The default is draw.ApproxBiLinear; draw.CatmullRom trades speed
// for quality.
func WithMipmapScaler(s draw.Scaler) PixmapTextureOption {
	return func(t *PixmapTexture) {
		t.scaler = s
	}
}

// NewPixmapTexture creates a texture backed by pm.
// Returns ErrNilPixmap if pm is nil.
func NewPixmapTexture(pm *gg.Pixmap, opts ...PixmapTextureOption) (*PixmapTexture, error) {
	if pm == nil {
		return nil, ErrNilPixmap
	}
	t := &PixmapTexture{
		pixmap: pm,
		format: gputypes.TextureFormatRGBA8Unorm,
		scaler: draw.ApproxBiLinear,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Pixmap returns the backing pixel data.
func (t *PixmapTexture) Pixmap() *gg.Pixmap {
	return t.pixmap
}

// Width returns the pixmap width in pixels.
func (t *PixmapTexture) Width() float64 {
	return float64(t.pixmap.Width())
}

// Height returns the pixmap height in pixels.
func (t *PixmapTexture) Height() float64 {
	return float64(t.pixmap.Height())
}

// Frame returns the frame rectangle and whether one is set.
func (t *PixmapTexture) Frame() (gg.Rect, bool) {
	return t.frame, t.hasFrame
}

// PremultipliedAlpha returns the pixel data's alpha convention.
func (t *PixmapTexture) PremultipliedAlpha() bool {
	return t.premultiplied
}

// AdjustVertexData validates the vertex range and leaves the texture
// coordinates unchanged: a root texture covers its full pixel area,
// so canonical quad space already is its sampling space.
func (t *PixmapTexture) AdjustVertexData(vd *VertexData, index, count int) error {
	return checkAdjustRange(vd, index, count)
}

// Format returns the GPU pixel format of the texture data.
func (t *PixmapTexture) Format() gputypes.TextureFormat {
	return t.format
}

// Descriptor returns a descriptor for the GPU texture to create,
// including the mipmap level count.
func (t *PixmapTexture) Descriptor() TextureDescriptor {
	desc := DefaultTextureDescriptor(uint32(t.pixmap.Width()), uint32(t.pixmap.Height()), t.format)
	desc.MipLevelCount = uint32(t.MipLevels())
	return desc
}

// MipLevels returns the number of mipmap levels, building the chain
// on first use. Level 0 is the full-size image; each further level
// halves both dimensions down to 1x1.
func (t *PixmapTexture) MipLevels() int {
	t.buildMipmaps()
	return len(t.mipmaps)
}

// MipLevel returns the pixels of one mipmap level.
func (t *PixmapTexture) MipLevel(level int) (*image.RGBA, error) {
	t.buildMipmaps()
	if level < 0 || level >= len(t.mipmaps) {
		return nil, ErrMipLevelOutOfRange
	}
	return t.mipmaps[level], nil
}

// buildMipmaps populates the mipmap chain. The texture is used from a
// single goroutine (see the package concurrency model), so a plain
// lazy check suffices.
func (t *PixmapTexture) buildMipmaps() {
	if t.mipmaps != nil {
		return
	}
	base := t.pixmap.ToImage()
	t.mipmaps = []*image.RGBA{base}

	w, h := t.pixmap.Width(), t.pixmap.Height()
	src := base
	for w > 1 || h > 1 {
		w = halve(w)
		h = halve(h)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		t.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		t.mipmaps = append(t.mipmaps, dst)
		src = dst
	}

	Logger().Debug("sprite: built mipmap chain",
		"width", t.pixmap.Width(), "height", t.pixmap.Height(),
		"levels", len(t.mipmaps))
}

// halve divides a dimension by two without dropping below one pixel.
func halve(d int) int {
	d /= 2
	if d < 1 {
		return 1
	}
	return d
}

// checkAdjustRange validates a vertex range for AdjustVertexData
// implementations.
func checkAdjustRange(vd *VertexData, index, count int) error {
	if vd == nil {
		return ErrNilVertexData
	}
	if index < 0 || count < 0 || index+count > vd.NumVertices() {
		return ErrVertexIndexOutOfRange
	}
	return nil
}

// Ensure PixmapTexture implements Texture.
var _ Texture = (*PixmapTexture)(nil)
