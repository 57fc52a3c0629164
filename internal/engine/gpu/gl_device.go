package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/logger"
)

type glMesh struct {
	source     *mesh.Mesh
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// GLDevice is a Device backed by an OpenGL 4.1 core context.
type GLDevice struct {
	ready    bool
	meshes   map[uint32]*glMesh
	uploaded map[*mesh.Mesh]Handle
	textures map[uint32]struct{}
}

// NewGLDevice creates a device. No GL calls are made until Init succeeds.
func NewGLDevice() *GLDevice {
	return &GLDevice{
		meshes:   make(map[uint32]*glMesh),
		uploaded: make(map[*mesh.Mesh]Handle),
		textures: make(map[uint32]struct{}),
	}
}

// Init loads the OpenGL entry points for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func (d *GLDevice) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	d.ready = true
	return nil
}

// Ready reports whether Init has succeeded.
func (d *GLDevice) Ready() bool {
	return d.ready
}

// UploadMesh creates a VAO with one interleaved vertex buffer
// (location 0 position, 1 normal, 2 texcoord) and an index buffer.
func (d *GLDevice) UploadMesh(m *mesh.Mesh) (Handle, error) {
	if !d.ready {
		return Handle{}, ErrDeviceNotReady
	}
	if m == nil || len(m.Indices) == 0 || m.VertexCount() == 0 {
		return Handle{}, fmt.Errorf("upload mesh: empty geometry")
	}
	if h, ok := d.uploaded[m]; ok {
		return h, nil
	}

	vertices := m.Interleaved()
	gm := &glMesh{source: m, indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	h := NewHandle(KindMesh, gm.vao)
	d.meshes[gm.vao] = gm
	d.uploaded[m] = h

	logger.Debug("mesh uploaded",
		zap.Stringer("handle", h),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", len(m.Indices)),
	)
	return h, nil
}

// DrawMesh draws all triangles of the mesh.
func (d *GLDevice) DrawMesh(h Handle) error {
	if !d.ready {
		return ErrDeviceNotReady
	}
	gm, err := d.lookupMesh(h)
	if err != nil {
		return err
	}

	gl.BindVertexArray(gm.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	return nil
}

// UploadTexture creates a mipmapped, repeating 2D texture.
func (d *GLDevice) UploadTexture(img *image.RGBA) (Handle, error) {
	if !d.ready {
		return Handle{}, ErrDeviceNotReady
	}
	if img == nil || img.Bounds().Empty() {
		return Handle{}, fmt.Errorf("upload texture: empty image")
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	d.textures[texID] = struct{}{}
	return NewHandle(KindTexture, texID), nil
}

// BindTexture binds h to texture unit `unit`.
func (d *GLDevice) BindTexture(unit int, h Handle) error {
	if !d.ready {
		return ErrDeviceNotReady
	}
	if h.Kind() != KindTexture {
		return fmt.Errorf("%w: %s is not a texture", ErrInvalidHandle, h)
	}
	if _, ok := d.textures[h.ID()]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}

	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, h.ID())
	return nil
}

// Release deletes the GL objects behind h.
func (d *GLDevice) Release(h Handle) {
	switch h.Kind() {
	case KindMesh:
		gm, ok := d.meshes[h.ID()]
		if !ok {
			return
		}
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
		delete(d.meshes, h.ID())
		delete(d.uploaded, gm.source)
	case KindTexture:
		if _, ok := d.textures[h.ID()]; !ok {
			return
		}
		id := h.ID()
		gl.DeleteTextures(1, &id)
		delete(d.textures, id)
	}
}

// Close releases every mesh and texture.
func (d *GLDevice) Close() {
	for id := range d.meshes {
		d.Release(NewHandle(KindMesh, id))
	}
	for id := range d.textures {
		d.Release(NewHandle(KindTexture, id))
	}
}

func (d *GLDevice) lookupMesh(h Handle) (*glMesh, error) {
	if h.Kind() != KindMesh {
		return nil, fmt.Errorf("%w: %s is not a mesh", ErrInvalidHandle, h)
	}
	gm, ok := d.meshes[h.ID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	return gm, nil
}
