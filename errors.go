package sprite

import "errors"

// Sentinel errors for the sprite package.
var (
	// ErrNilTexture is returned when an Image is created with, or
	// assigned, a nil texture.
	ErrNilTexture = errors.New("sprite: texture is nil")

	// ErrNilPixmap is returned when a PixmapTexture is created
	// without a backing pixmap.
	ErrNilPixmap = errors.New("sprite: pixmap is nil")

	// ErrInvalidSmoothing is returned when an unrecognized smoothing
	// mode is assigned.
	ErrInvalidSmoothing = errors.New("sprite: invalid smoothing mode")

	// ErrVertexIndexOutOfRange is returned when a vertex index is
	// outside a block's fixed vertex count.
	ErrVertexIndexOutOfRange = errors.New("sprite: vertex index out of range")

	// ErrNilVertexData is returned when an operation is given a nil
	// vertex block.
	ErrNilVertexData = errors.New("sprite: vertex data is nil")

	// ErrDestinationTooSmall is returned when a vertex-data copy does
	// not fit in the destination block at the requested offset.
	ErrDestinationTooSmall = errors.New("sprite: destination vertex data too small")

	// ErrRegionOutOfBounds is returned when a SubTexture region lies
	// outside its parent texture.
	ErrRegionOutOfBounds = errors.New("sprite: subtexture region outside parent bounds")

	// ErrMipLevelOutOfRange is returned when a mipmap level index is
	// outside a texture's chain.
	ErrMipLevelOutOfRange = errors.New("sprite: mip level out of range")

	// ErrBatchFull is returned when a QuadBatch cannot accept another
	// quad without overflowing its 16-bit index space.
	ErrBatchFull = errors.New("sprite: quad batch is full")
)
