package sprite

// SmoothingMode controls how a texture is sampled when it is drawn at
// a scale where texels and pixels do not line up one to one.
type SmoothingMode uint8

const (
	// SmoothingNone samples the nearest texel. Fastest, pixelated look.
	SmoothingNone SmoothingMode = iota

	// SmoothingBilinear interpolates between the four nearest texels.
	SmoothingBilinear

	// SmoothingTrilinear additionally interpolates between mipmap
	// levels. Requires the texture to carry a mipmap chain.
	SmoothingTrilinear
)

// DefaultSmoothing is the smoothing mode a new Image starts with.
const DefaultSmoothing = SmoothingBilinear

// String returns a human-readable name for the smoothing mode.
func (m SmoothingMode) String() string {
	switch m {
	case SmoothingNone:
		return "None"
	case SmoothingBilinear:
		return "Bilinear"
	case SmoothingTrilinear:
		return "Trilinear"
	default:
		return "Unknown"
	}
}

// IsValid returns true if m is one of the defined smoothing modes.
func (m SmoothingMode) IsValid() bool {
	return m <= SmoothingTrilinear
}

// UsesMipmaps returns true if the mode samples across mipmap levels.
func (m SmoothingMode) UsesMipmaps() bool {
	return m == SmoothingTrilinear
}
