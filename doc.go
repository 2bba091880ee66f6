// Package sprite provides a retained-mode textured-quad layer for the
// GoGPU ecosystem.
//
// # Overview
//
// sprite sits on top of github.com/gogpu/gg and models the leaf nodes
// of a 2D scene graph: quads that map a texture (or a sub-region of a
// texture atlas) onto four vertices. The central type is [Image], a
// textured quad that keeps a texture-adjusted copy of its vertex data
// ready for batched rendering and rebuilds it only when something
// actually changed.
//
// # Quick Start
//
//	import "github.com/gogpu/sprite"
//
//	tex, _ := sprite.NewPixmapTexture(pixmap)
//	img, _ := sprite.NewImage(tex)
//
//	batch := sprite.NewQuadBatch()
//	img.Render(batch, 1.0)
//
//	// batch.Vertices() / batch.Indices() / batch.DrawCalls() are now
//	// ready for GPU upload.
//
// # Architecture
//
// The package is organized around a few small pieces:
//   - VertexData: fixed-size vertex blocks with copy and
//     copy-with-transform operations
//   - Texture: the capability a texture must provide (size, frame,
//     alpha convention, coordinate adjustment)
//   - PixmapTexture / SubTexture: concrete textures, including atlas
//     sub-regions with 90 degree rotation
//   - Image: the textured quad with its vertex-data cache
//   - QuadBatch: a RenderSupport that accumulates quads into
//     interleaved vertex and index buffers
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Texture coordinates in [0,1] with (0,0) at the top-left corner
//
// # Alpha Convention
//
// Vertex colors are stored either premultiplied or straight, tracked
// per vertex block. An Image keeps its blocks in sync with the alpha
// convention of its current texture, so batched output always matches
// what the texture expects at compositing time.
package sprite
