// Package mesh builds procedural geometry for the renderer.
package mesh

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a tessellation resolution cannot
// produce geometry.
var ErrInvalidArgument = errors.New("invalid argument")

// FloatsPerVertex is the stride of Interleaved: position, normal, texcoord.
const FloatsPerVertex = 3 + 3 + 2

// Mesh is CPU-side triangle geometry. Attribute slices are packed per vertex
// and share the same vertex indexing. A Mesh is never modified after
// generation and may be shared by any number of draws.
type Mesh struct {
	Positions []float32 // x, y, z
	Normals   []float32 // nx, ny, nz
	TexCoords []float32 // u, v
	Indices   []uint32

	// Resolution is the number of latitude and longitude divisions.
	Resolution int
}

// GenerateSphere builds a unit UV-sphere with resolution divisions along both
// latitude and longitude.
//
// Vertices are laid out ring by ring from the north pole (v=0) to the south
// pole (v=1). Pole and seam vertices are duplicated rather than shared, so the
// j=0 and j=resolution columns carry u=0 and u=1 at the same position and the
// pole rows produce zero-area triangles.
func GenerateSphere(resolution int) (*Mesh, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: sphere resolution %d", ErrInvalidArgument, resolution)
	}

	res := resolution
	vertexCount := (res + 1) * (res + 1)
	m := &Mesh{
		Positions:  make([]float32, 0, vertexCount*3),
		Normals:    make([]float32, 0, vertexCount*3),
		TexCoords:  make([]float32, 0, vertexCount*2),
		Indices:    make([]uint32, 0, 6*res*res),
		Resolution: res,
	}

	for i := 0; i <= res; i++ {
		phi := math.Pi * float64(i) / float64(res)
		sinPhi, cosPhi := math.Sincos(phi)

		for j := 0; j <= res; j++ {
			theta := 2 * math.Pi * float64(j) / float64(res)
			sinTheta, cosTheta := math.Sincos(theta)

			x := float32(sinPhi * cosTheta)
			y := float32(cosPhi)
			z := float32(sinPhi * sinTheta)

			m.Positions = append(m.Positions, x, y, z)
			// Radius is exactly 1, so the position is already the unit normal.
			m.Normals = append(m.Normals, x, y, z)
			m.TexCoords = append(m.TexCoords, float32(j)/float32(res), float32(i)/float32(res))
		}
	}

	stride := uint32(res + 1)
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			first := uint32(i)*stride + uint32(j)
			second := first + stride

			m.Indices = append(m.Indices,
				first, first+1, second,
				second, first+1, second+1,
			)
		}
	}

	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles described by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) [3]float32 {
	return [3]float32{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// TexCoord returns the texture coordinate of vertex i.
func (m *Mesh) TexCoord(i int) [2]float32 {
	return [2]float32{m.TexCoords[i*2], m.TexCoords[i*2+1]}
}

// Interleaved packs the attributes into one buffer of FloatsPerVertex
// floats per vertex, ready for a single vertex buffer upload.
func (m *Mesh) Interleaved() []float32 {
	n := m.VertexCount()
	out := make([]float32, 0, n*FloatsPerVertex)
	for i := 0; i < n; i++ {
		out = append(out, m.Positions[i*3:i*3+3]...)
		out = append(out, m.Normals[i*3:i*3+3]...)
		out = append(out, m.TexCoords[i*2:i*2+2]...)
	}
	return out
}
