package sprite

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

// stubTexture is a Texture test double that records coordinate
// adjustment invocations.
type stubTexture struct {
	width, height float64
	frame         gg.Rect
	hasFrame      bool
	premultiplied bool

	adjustCalls int
	adjust      func(vd *VertexData, index, count int) error
}

func (t *stubTexture) Width() float64           { return t.width }
func (t *stubTexture) Height() float64          { return t.height }
func (t *stubTexture) Frame() (gg.Rect, bool)   { return t.frame, t.hasFrame }
func (t *stubTexture) PremultipliedAlpha() bool { return t.premultiplied }

func (t *stubTexture) AdjustVertexData(vd *VertexData, index, count int) error {
	t.adjustCalls++
	if t.adjust != nil {
		return t.adjust(vd, index, count)
	}
	return nil
}

// newStubTexture returns a frameless 100x100 straight-alpha texture.
func newStubTexture() *stubTexture {
	return &stubTexture{width: 100, height: 100}
}

func TestNewImageNilTexture(t *testing.T) {
	img, err := NewImage(nil)
	if !errors.Is(err, ErrNilTexture) {
		t.Errorf("NewImage(nil) error = %v, want ErrNilTexture", err)
	}
	if img != nil {
		t.Errorf("NewImage(nil) = %v, want nil", img)
	}
}

func TestNewImageFromFrame(t *testing.T) {
	tex := &stubTexture{
		width:         100,
		height:        100,
		frame:         gg.NewRect(gg.Pt(0, 0), gg.Pt(50, 80)),
		hasFrame:      true,
		premultiplied: true,
	}
	img, err := NewImage(tex)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	wantPos := [][2]float64{{0, 0}, {50, 0}, {0, 80}, {50, 80}}
	wantTex := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i := 0; i < 4; i++ {
		x, y, err := img.vertexData.Position(i)
		if err != nil {
			t.Fatalf("Position(%d) failed: %v", i, err)
		}
		if x != wantPos[i][0] || y != wantPos[i][1] {
			t.Errorf("corner %d = (%v, %v), want (%v, %v)", i, x, y, wantPos[i][0], wantPos[i][1])
		}
		u, v, err := img.TexCoord(i)
		if err != nil {
			t.Fatalf("TexCoord(%d) failed: %v", i, err)
		}
		if u != wantTex[i][0] || v != wantTex[i][1] {
			t.Errorf("tex coord %d = (%v, %v), want (%v, %v)", i, u, v, wantTex[i][0], wantTex[i][1])
		}
	}

	if !img.vertexData.PremultipliedAlpha() {
		t.Error("authoritative block should adopt the texture's premultiplied convention")
	}
	if !img.cache.PremultipliedAlpha() {
		t.Error("cache block should adopt the texture's premultiplied convention")
	}
	if img.cacheValid {
		t.Error("cache should start invalid")
	}
}

func TestNewImageSmoothingOption(t *testing.T) {
	img, err := NewImage(newStubTexture(), WithSmoothing(SmoothingTrilinear))
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Smoothing() != SmoothingTrilinear {
		t.Errorf("Smoothing() = %v, want SmoothingTrilinear", img.Smoothing())
	}

	img, err = NewImage(newStubTexture(), WithSmoothing(SmoothingMode(99)))
	if !errors.Is(err, ErrInvalidSmoothing) {
		t.Errorf("invalid smoothing option error = %v, want ErrInvalidSmoothing", err)
	}
	if img != nil {
		t.Errorf("NewImage with invalid smoothing = %v, want nil", img)
	}
}

func TestNewImageIntrinsicSize(t *testing.T) {
	img, err := NewImage(&stubTexture{width: 32, height: 16})
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	x, y, _ := img.vertexData.Position(3)
	if x != 32 || y != 16 {
		t.Errorf("bottom-right corner = (%v, %v), want (32, 16)", x, y)
	}
}

func TestTexCoordRoundTrip(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	tests := []struct {
		index int
		u, v  float64
	}{
		{0, 0.25, 0.75},
		{1, 0.5, 0.5},
		{2, 0, 1},
		{3, 0.125, 0.875},
	}
	for _, tt := range tests {
		if err := img.SetTexCoord(tt.index, tt.u, tt.v); err != nil {
			t.Fatalf("SetTexCoord(%d) failed: %v", tt.index, err)
		}
		u, v, err := img.TexCoord(tt.index)
		if err != nil {
			t.Fatalf("TexCoord(%d) failed: %v", tt.index, err)
		}
		if u != tt.u || v != tt.v {
			t.Errorf("TexCoord(%d) = (%v, %v), want (%v, %v)", tt.index, u, v, tt.u, tt.v)
		}
	}
}

func TestSetTexCoordOutOfRange(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	for _, index := range []int{-1, 4, 100} {
		if err := img.SetTexCoord(index, 0, 0); !errors.Is(err, ErrVertexIndexOutOfRange) {
			t.Errorf("SetTexCoord(%d) error = %v, want ErrVertexIndexOutOfRange", index, err)
		}
		if _, _, err := img.TexCoord(index); !errors.Is(err, ErrVertexIndexOutOfRange) {
			t.Errorf("TexCoord(%d) error = %v, want ErrVertexIndexOutOfRange", index, err)
		}
	}
}

func TestExportAdjustsExactlyOnce(t *testing.T) {
	tex := newStubTexture()
	img, err := NewImage(tex)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	dst := NewVertexData(4, false)
	for i := 0; i < 3; i++ {
		if err := img.CopyVertexDataTo(dst, 0); err != nil {
			t.Fatalf("export %d failed: %v", i, err)
		}
	}
	if tex.adjustCalls != 1 {
		t.Errorf("adjust calls after 3 exports = %d, want 1", tex.adjustCalls)
	}
}

func TestMutationInvalidatesCache(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, img *Image)
	}{
		{"SetTexCoord", func(t *testing.T, img *Image) {
			if err := img.SetTexCoord(0, 0.5, 0.5); err != nil {
				t.Fatalf("SetTexCoord failed: %v", err)
			}
		}},
		{"SetTexture", func(t *testing.T, img *Image) {
			if err := img.SetTexture(newStubTexture()); err != nil {
				t.Fatalf("SetTexture failed: %v", err)
			}
		}},
		{"ReadjustSize", func(t *testing.T, img *Image) {
			img.ReadjustSize()
		}},
		{"SetVertexColor", func(t *testing.T, img *Image) {
			if err := img.SetVertexColor(0, gg.Red); err != nil {
				t.Fatalf("SetVertexColor failed: %v", err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(newStubTexture())
			if err != nil {
				t.Fatalf("NewImage failed: %v", err)
			}
			dst := NewVertexData(4, false)
			if err := img.CopyVertexDataTo(dst, 0); err != nil {
				t.Fatalf("export failed: %v", err)
			}
			if !img.cacheValid {
				t.Fatal("cache should be valid after export")
			}

			tt.mutate(t, img)

			if img.cacheValid {
				t.Error("cache should be invalid immediately after mutation")
			}
		})
	}
}

func TestExportReflectsMutation(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	dst := NewVertexData(4, false)
	if err := img.CopyVertexDataTo(dst, 0); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if err := img.SetTexCoord(1, 0.25, 0.5); err != nil {
		t.Fatalf("SetTexCoord failed: %v", err)
	}
	if err := img.CopyVertexDataTo(dst, 0); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	u, v, err := dst.TexCoord(1)
	if err != nil {
		t.Fatalf("TexCoord failed: %v", err)
	}
	if u != 0.25 || v != 0.5 {
		t.Errorf("exported tex coord = (%v, %v), want (0.25, 0.5): stale cache observed", u, v)
	}
}

func TestSetTextureSameReferenceNoOp(t *testing.T) {
	tex := newStubTexture()
	img, err := NewImage(tex)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	dst := NewVertexData(4, false)
	if err := img.CopyVertexDataTo(dst, 0); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if err := img.SetTexture(tex); err != nil {
		t.Fatalf("SetTexture failed: %v", err)
	}
	if !img.cacheValid {
		t.Error("assigning the same texture should leave the cache valid")
	}
	if err := img.CopyVertexDataTo(dst, 0); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if tex.adjustCalls != 1 {
		t.Errorf("adjust calls = %d, want 1: same-reference assignment must not rebuild", tex.adjustCalls)
	}
}

func TestSetTextureNil(t *testing.T) {
	tex := newStubTexture()
	img, err := NewImage(tex)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	if err := img.SetTexture(nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("SetTexture(nil) error = %v, want ErrNilTexture", err)
	}
	if img.Texture() != Texture(tex) {
		t.Error("failed SetTexture must leave the previous texture in place")
	}
}

func TestSetTexturePropagatesAlphaConvention(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.vertexData.PremultipliedAlpha() {
		t.Fatal("straight-alpha texture should produce straight-alpha blocks")
	}

	pmaTex := &stubTexture{width: 100, height: 100, premultiplied: true}
	if err := img.SetTexture(pmaTex); err != nil {
		t.Fatalf("SetTexture failed: %v", err)
	}
	if !img.vertexData.PremultipliedAlpha() {
		t.Error("authoritative block should follow the new texture's convention")
	}
	if !img.cache.PremultipliedAlpha() {
		t.Error("cache block should follow the new texture's convention")
	}
}

func TestReadjustSize(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if err := img.SetTexCoord(3, 0.5, 0.5); err != nil {
		t.Fatalf("SetTexCoord failed: %v", err)
	}

	next := &stubTexture{
		width:    256,
		height:   256,
		frame:    gg.NewRect(gg.Pt(0, 0), gg.Pt(200, 40)),
		hasFrame: true,
	}
	if err := img.SetTexture(next); err != nil {
		t.Fatalf("SetTexture failed: %v", err)
	}
	img.ReadjustSize()

	wantPos := [][2]float64{{0, 0}, {200, 0}, {0, 40}, {200, 40}}
	for i := 0; i < 4; i++ {
		x, y, _ := img.vertexData.Position(i)
		if x != wantPos[i][0] || y != wantPos[i][1] {
			t.Errorf("corner %d = (%v, %v), want (%v, %v)", i, x, y, wantPos[i][0], wantPos[i][1])
		}
	}

	// Resize must not touch texture coordinates.
	u, v, _ := img.TexCoord(3)
	if u != 0.5 || v != 0.5 {
		t.Errorf("tex coord after resize = (%v, %v), want (0.5, 0.5)", u, v)
	}
}

func TestExportIdentityTransform(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	plain := NewVertexData(4, false)
	if err := img.CopyVertexDataTo(plain, 0); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	identity := gg.Identity()
	transformed := NewVertexData(4, false)
	if err := img.CopyVertexDataTransformedTo(transformed, 0, &identity); err != nil {
		t.Fatalf("transformed export failed: %v", err)
	}

	const tolerance = 1e-12
	for i := 0; i < 4; i++ {
		x0, y0, _ := plain.Position(i)
		x1, y1, _ := transformed.Position(i)
		if math.Abs(x0-x1) > tolerance || math.Abs(y0-y1) > tolerance {
			t.Errorf("vertex %d: identity transform gave (%v, %v), want (%v, %v)", i, x1, y1, x0, y0)
		}
	}
}

func TestExportTransformsPositionsOnly(t *testing.T) {
	img, err := NewImage(&stubTexture{width: 10, height: 10})
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}

	m := gg.Translate(5, 7)
	dst := NewVertexData(4, false)
	if err := img.CopyVertexDataTransformedTo(dst, 0, &m); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	x, y, _ := dst.Position(0)
	if x != 5 || y != 7 {
		t.Errorf("transformed top-left = (%v, %v), want (5, 7)", x, y)
	}
	u, v, _ := dst.TexCoord(3)
	if u != 1 || v != 1 {
		t.Errorf("tex coord = (%v, %v), want (1, 1): coordinates must not be transformed", u, v)
	}
}

func TestSetSmoothing(t *testing.T) {
	img, err := NewImage(newStubTexture())
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Smoothing() != DefaultSmoothing {
		t.Errorf("initial smoothing = %v, want %v", img.Smoothing(), DefaultSmoothing)
	}

	if err := img.SetSmoothing(SmoothingTrilinear); err != nil {
		t.Fatalf("SetSmoothing failed: %v", err)
	}
	if err := img.SetSmoothing(SmoothingMode(42)); !errors.Is(err, ErrInvalidSmoothing) {
		t.Errorf("SetSmoothing(42) error = %v, want ErrInvalidSmoothing", err)
	}
	if img.Smoothing() != SmoothingTrilinear {
		t.Errorf("smoothing after failed assignment = %v, want Trilinear", img.Smoothing())
	}
}

// captureSupport records the arguments of the last BatchQuad call.
type captureSupport struct {
	img       *Image
	opacity   float64
	tex       Texture
	smoothing SmoothingMode
	calls     int
}

func (s *captureSupport) BatchQuad(img *Image, opacity float64, tex Texture, smoothing SmoothingMode) error {
	s.img = img
	s.opacity = opacity
	s.tex = tex
	s.smoothing = smoothing
	s.calls++
	return nil
}

func TestRenderDelegates(t *testing.T) {
	tex := newStubTexture()
	img, err := NewImage(tex)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	img.SetAlpha(0.5)
	if err := img.SetSmoothing(SmoothingNone); err != nil {
		t.Fatalf("SetSmoothing failed: %v", err)
	}

	support := &captureSupport{}
	if err := img.Render(support, 0.5); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if support.img != img {
		t.Error("Render should pass the image itself")
	}
	if support.opacity != 0.25 {
		t.Errorf("opacity = %v, want 0.25 (0.5 * 0.5)", support.opacity)
	}
	if support.tex != Texture(tex) {
		t.Error("Render should pass the current texture")
	}
	if support.smoothing != SmoothingNone {
		t.Errorf("smoothing = %v, want None", support.smoothing)
	}

	// A later swap must be reflected by the next call, not the state
	// at some earlier mutation time.
	next := &stubTexture{width: 1, height: 1}
	if err := img.SetTexture(next); err != nil {
		t.Fatalf("SetTexture failed: %v", err)
	}
	if err := img.Render(support, 1); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if support.tex != Texture(next) {
		t.Error("Render should reflect the texture at call time")
	}
}
