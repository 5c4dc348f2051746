package demo

import (
	"math"

	m "github.com/go-gl/mathgl/mgl32"
)

// MeshData is an indexed mesh with interleaved position and normal.
type MeshData struct {
	Vertices []float32
	Indices  []uint16
}

// VertexFloats is the number of float32 values per vertex in MeshData.
const VertexFloats = 6

func (mesh *MeshData) Vertex(v m.Vec3) uint16 {
	p := len(mesh.Vertices) / VertexFloats
	mesh.Vertices = append(mesh.Vertices, v[:]...)
	// radial normal, good enough for a lathe
	n := m.Vec3{v[0], v[1], 0}
	if n.Len() > 1e-6 {
		n = n.Normalize()
	} else {
		n = m.Vec3{0, 0, 1}
	}
	mesh.Vertices = append(mesh.Vertices, n[:]...)
	return uint16(p)
}

func (mesh *MeshData) Triangle(a, b, c uint16) {
	mesh.Indices = append(mesh.Indices, a, b, c)
}

// TriangleList expands the indexed mesh into a flat triangle list, since
// meshes are drawn without an index buffer.
func (mesh *MeshData) TriangleList() []float32 {
	list := make([]float32, 0, len(mesh.Indices)*VertexFloats)
	for _, index := range mesh.Indices {
		start := int(index) * VertexFloats
		list = append(list, mesh.Vertices[start:start+VertexFloats]...)
	}
	return list
}

// Lathe sweeps fn around the z axis. fn receives t in [0, 1] along the axis
// and the angle phase in radians. depth and corners must be at least 2.
func Lathe(depth, corners int, capped bool, fn func(t, phase float32) m.Vec3) MeshData {
	mesh := MeshData{}

	var headAverage m.Vec3
	lastLayer, nextLayer := make([]uint16, corners), make([]uint16, corners)
	for pi := 0; pi < corners; pi++ {
		p := float32(pi) * math.Pi * 2 / float32(corners-1)
		v := fn(0, p)
		lastLayer[pi] = mesh.Vertex(v)
		if capped {
			headAverage = headAverage.Add(v)
		}
	}

	if capped {
		headAverage = headAverage.Mul(1 / float32(corners))
		z0 := mesh.Vertex(headAverage)
		for pi := 0; pi < corners; pi++ {
			a, b := lastLayer[pi], lastLayer[(pi+1)%corners]
			mesh.Triangle(z0, a, b)
		}
	}

	var tailAverage m.Vec3
	for ti := 1; ti < depth; ti++ {
		t := float32(ti) / float32(depth-1)
		for pi := 0; pi < corners; pi++ {
			p := float32(pi) * math.Pi * 2 / float32(corners-1)
			v := fn(t, p)
			nextLayer[pi] = mesh.Vertex(v)
			if capped && ti == depth-1 {
				tailAverage = tailAverage.Add(v)
			}
		}

		for pi := 0; pi < corners; pi++ {
			a, b := lastLayer[pi], lastLayer[(pi+1)%corners]
			c, d := nextLayer[pi], nextLayer[(pi+1)%corners]
			mesh.Triangle(a, c, d)
			mesh.Triangle(a, d, b)
		}

		lastLayer, nextLayer = nextLayer, lastLayer
	}

	if capped {
		tailAverage = tailAverage.Mul(1 / float32(corners))
		zt := mesh.Vertex(tailAverage)
		for pi := 0; pi < corners; pi++ {
			a, b := lastLayer[pi], lastLayer[(pi+1)%corners]
			mesh.Triangle(a, zt, b)
		}
	}

	return mesh
}

// Fish is the body profile used by the lathe demo.
func Fish(t, phase float32) m.Vec3 {
	r := 12.291*t*t*t - 20*t*t + 8.508*t
	h := 3 * t
	rx := 0.5 * h * float32(math.Exp(float64(1-h)))

	sn, cs := math.Sincos(float64(phase))
	return m.Vec3{
		r * float32(sn) * rx,
		r * float32(cs),
		(t - 0.5) * 3,
	}
}
