package mesh

import "github.com/adinfinit/meshlab/gpu"

// Attribute is one entry of an interleaved vertex record.
type Attribute struct {
	Type  gpu.ComponentType
	Count int32
	// Name optionally names the shader input the attribute feeds; when set,
	// scene checks that the program places that input at this attribute's
	// position in the layout.
	Name string
}

// Size returns the attribute's width in bytes.
func (attr Attribute) Size() int32 {
	return gpu.ComponentByteSize(attr.Type) * attr.Count
}

// Layout describes one interleaved vertex record. The attribute index of an
// entry is its position in the slice.
type Layout []Attribute

// Stride returns the byte distance between consecutive vertex records.
func (layout Layout) Stride() int32 {
	stride := int32(0)
	for _, attr := range layout {
		stride += attr.Size()
	}
	return stride
}

// Offsets returns the byte offset of every attribute within a record.
func (layout Layout) Offsets() []int32 {
	offsets := make([]int32, len(layout))
	offset := int32(0)
	for i, attr := range layout {
		offsets[i] = offset
		offset += attr.Size()
	}
	return offsets
}

// Float is shorthand for an attribute of count float32 components.
func Float(name string, count int32) Attribute {
	return Attribute{Type: gpu.Float, Count: count, Name: name}
}
