package fontatlas

import (
	"encoding/binary"
	"math"
)

// VertexBufferFlags describe the format of the vertex and optional
// index buffer that quads are emitted into.
type VertexBufferFlags uint32

const (
	// UseIndexBuffer16Bit emits indices as little-endian uint16.
	UseIndexBuffer16Bit VertexBufferFlags = 0x1
	// UseIndexBuffer32Bit emits indices as little-endian uint32.
	UseIndexBuffer32Bit VertexBufferFlags = 0x2

	// TriangleList emits each quad as two independent triangles:
	// 6 vertices unindexed, or 4 vertices + 6 indices indexed.
	TriangleList VertexBufferFlags = 0x10
	// TriangleStripWithRestartIndex emits each quad as a 4-vertex
	// strip, separating quads with the primitive restart sentinel.
	// Requires an index buffer.
	TriangleStripWithRestartIndex VertexBufferFlags = 0x20
	// TriangleStripWithDegenerateTriangles emits each quad as a
	// 4-vertex strip, bridging quads with two duplicated vertices (or
	// indices) that form zero-area triangles.
	TriangleStripWithDegenerateTriangles VertexBufferFlags = 0x40
)

// Primitive restart sentinels: the all-ones value of the index width.
const (
	Restart16 uint16 = 0xFFFF
	Restart32 uint32 = 0xFFFFFFFF
)

// anyIndexBuffer selects both index buffer bits.
const anyIndexBuffer = UseIndexBuffer16Bit | UseIndexBuffer32Bit

// ValidateVertexBufferFlags reports whether the combination is valid:
// at most one index width, exactly one topology, and an index buffer
// wherever the restart-index topology is chosen.
func ValidateVertexBufferFlags(vbFlags VertexBufferFlags) bool {
	useIB16 := vbFlags&UseIndexBuffer16Bit != 0
	useIB32 := vbFlags&UseIndexBuffer32Bit != 0
	if useIB16 && useIB32 {
		return false
	}

	topologies := 0
	if vbFlags&TriangleList != 0 {
		topologies++
	}
	if vbFlags&TriangleStripWithRestartIndex != 0 {
		topologies++
		if !useIB16 && !useIB32 {
			return false
		}
	}
	if vbFlags&TriangleStripWithDegenerateTriangles != 0 {
		topologies++
	}
	return topologies == 1
}

// QuadCountToVertexCount converts a quad count to the number of
// vertices and indices the emitter will write under vbFlags.
func QuadCountToVertexCount(vbFlags VertexBufferFlags, quadCount int) (vertexCount, indexCount int) {
	if quadCount == 0 {
		return 0, 0
	}

	if vbFlags&anyIndexBuffer != 0 {
		switch {
		case vbFlags&TriangleList != 0:
			return quadCount * 4, quadCount * 6
		case vbFlags&TriangleStripWithRestartIndex != 0:
			return quadCount * 4, quadCount*4 + (quadCount - 1)
		case vbFlags&TriangleStripWithDegenerateTriangles != 0:
			return quadCount * 4, quadCount*4 + (quadCount-1)*2
		}
		return 0, 0
	}

	switch {
	case vbFlags&TriangleList != 0:
		return quadCount * 6, 0
	case vbFlags&TriangleStripWithDegenerateTriangles != 0:
		return quadCount*4 + (quadCount-1)*2, 0
	}
	return 0, 0
}

// VertexBufferDesc describes caller-owned interleaved vertex memory
// and an optional index buffer. The emitter never allocates; it writes
// exactly the counts reported by QuadCountToVertexCount.
//
// Positions and TexCoords may alias the same backing array at
// different offsets (the usual interleaved vertex struct). Each
// attribute is two consecutive little-endian float32 values; no other
// vertex attributes are touched.
type VertexBufferDesc struct {
	// Positions starts at the position attribute of the first vertex.
	Positions []byte
	// PositionStride is the byte step between consecutive vertices'
	// position attributes.
	PositionStride int

	// TexCoords starts at the texture coordinate attribute of the
	// first vertex.
	TexCoords []byte
	// TexCoordStride is the byte step between consecutive vertices'
	// texture coordinate attributes.
	TexCoordStride int

	// Indices starts at the first index. Ignored unless vbFlags
	// request an index buffer.
	Indices []byte
}

// emitMode is the resolved quad emission schedule. It is computed once
// per writer so the per-quad path dispatches on a single enum and the
// inner loops stay free of topology re-validation.
type emitMode uint8

const (
	emitListUnindexed emitMode = iota
	emitListIndexed
	emitStripRestart
	emitStripDegenerateUnindexed
	emitStripDegenerateIndexed
)

// resolveEmitMode maps validated flags to their emission schedule.
func resolveEmitMode(vbFlags VertexBufferFlags) emitMode {
	indexed := vbFlags&anyIndexBuffer != 0
	switch {
	case vbFlags&TriangleList != 0:
		if indexed {
			return emitListIndexed
		}
		return emitListUnindexed
	case vbFlags&TriangleStripWithRestartIndex != 0:
		return emitStripRestart
	default:
		if indexed {
			return emitStripDegenerateIndexed
		}
		return emitStripDegenerateUnindexed
	}
}

// quadWriter writes a sequence of quads into a vertex buffer.
type quadWriter struct {
	desc    *VertexBufferDesc
	mode    emitMode
	index32 bool
	quad    int
}

// newQuadWriter creates a writer for the given buffer format. The desc
// must remain alive and unchanged while the writer is in use.
func newQuadWriter(vbFlags VertexBufferFlags, desc *VertexBufferDesc) quadWriter {
	return quadWriter{
		desc:    desc,
		mode:    resolveEmitMode(vbFlags),
		index32: vbFlags&UseIndexBuffer32Bit != 0,
	}
}

// quadIndices is the per-quad index pattern for indexed triangle
// lists, relative to the quad's base vertex.
var quadIndices = [6]int32{0, 1, 2, 2, 1, 3}

// stripIndices is the per-quad index pattern for triangle strips.
var stripIndices = [4]int32{0, 1, 2, 3}

// degenerateBridge bridges two strip quads in indexed mode: the last
// index of the prior quad and the first of the new one.
var degenerateBridge = [2]int32{-1, 0}

// postQuad writes one quad. positions and texCoords are rectangles:
// (X, Y) left-top, (Z, W) right-bottom. Vertex order within the quad
// is LT, RT, LB, RB.
func (w *quadWriter) postQuad(positions, texCoords Vec4) {
	q := w.quad
	switch w.mode {
	case emitListIndexed:
		w.setQuadVertices(q*4, positions, texCoords)
		w.setIndices(q*6, quadIndices[:], int32(q*4))

	case emitStripRestart:
		w.setQuadVertices(q*4, positions, texCoords)
		if q > 0 {
			w.setRestartIndex(q*5 - 1)
		}
		w.setIndices(q*5, stripIndices[:], int32(q*4))

	case emitStripDegenerateIndexed:
		w.setQuadVertices(q*4, positions, texCoords)
		if q > 0 {
			w.setIndices(q*6-2, degenerateBridge[:], int32(q*4))
		}
		w.setIndices(q*6, stripIndices[:], int32(q*4))

	case emitStripDegenerateUnindexed:
		if q > 0 {
			w.setPositionOnlyVertex(q*6-2, w.getPosition(q*6-3))
			w.setPositionOnlyVertex(q*6-1, Vec2{X: positions.X, Y: positions.Y})
		}
		w.setQuadVertices(q*6, positions, texCoords)

	default: // emitListUnindexed
		w.setVertex(q*6+0, Vec2{positions.X, positions.Y}, Vec2{texCoords.X, texCoords.Y})
		w.setVertex(q*6+1, Vec2{positions.Z, positions.Y}, Vec2{texCoords.Z, texCoords.Y})
		w.setVertex(q*6+2, Vec2{positions.X, positions.W}, Vec2{texCoords.X, texCoords.W})
		w.setVertex(q*6+3, Vec2{positions.X, positions.W}, Vec2{texCoords.X, texCoords.W})
		w.setVertex(q*6+4, Vec2{positions.Z, positions.Y}, Vec2{texCoords.Z, texCoords.Y})
		w.setVertex(q*6+5, Vec2{positions.Z, positions.W}, Vec2{texCoords.Z, texCoords.W})
	}
	w.quad++
}

// setQuadVertices writes the four corners LT, RT, LB, RB starting at
// the given vertex index.
func (w *quadWriter) setQuadVertices(base int, positions, texCoords Vec4) {
	w.setVertex(base+0, Vec2{positions.X, positions.Y}, Vec2{texCoords.X, texCoords.Y})
	w.setVertex(base+1, Vec2{positions.Z, positions.Y}, Vec2{texCoords.Z, texCoords.Y})
	w.setVertex(base+2, Vec2{positions.X, positions.W}, Vec2{texCoords.X, texCoords.W})
	w.setVertex(base+3, Vec2{positions.Z, positions.W}, Vec2{texCoords.Z, texCoords.W})
}

// setVertex writes one vertex's position and texture coordinate.
func (w *quadWriter) setVertex(vertexIndex int, pos, texCoord Vec2) {
	putVec2(w.desc.Positions, vertexIndex*w.desc.PositionStride, pos)
	putVec2(w.desc.TexCoords, vertexIndex*w.desc.TexCoordStride, texCoord)
}

// setPositionOnlyVertex writes a bridging vertex's position, leaving
// its texture coordinate untouched.
func (w *quadWriter) setPositionOnlyVertex(vertexIndex int, pos Vec2) {
	putVec2(w.desc.Positions, vertexIndex*w.desc.PositionStride, pos)
}

// getPosition reads back a previously written vertex position.
func (w *quadWriter) getPosition(vertexIndex int) Vec2 {
	off := vertexIndex * w.desc.PositionStride
	return Vec2{
		X: math.Float32frombits(binary.LittleEndian.Uint32(w.desc.Positions[off:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(w.desc.Positions[off+4:])),
	}
}

// setRestartIndex writes the primitive restart sentinel.
func (w *quadWriter) setRestartIndex(indexIndex int) {
	if w.index32 {
		binary.LittleEndian.PutUint32(w.desc.Indices[indexIndex*4:], Restart32)
	} else {
		binary.LittleEndian.PutUint16(w.desc.Indices[indexIndex*2:], Restart16)
	}
}

// setIndices writes a run of indices, each offset by the quad's base
// vertex.
func (w *quadWriter) setIndices(firstIndexIndex int, indices []int32, vertexOffset int32) {
	if w.index32 {
		buf := w.desc.Indices[firstIndexIndex*4:]
		for i, idx := range indices {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(vertexOffset+idx))
		}
	} else {
		buf := w.desc.Indices[firstIndexIndex*2:]
		for i, idx := range indices {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(vertexOffset+idx))
		}
	}
}

// putVec2 writes two little-endian float32 values at off.
func putVec2(buf []byte, off int, v Vec2) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(v.Y))
}
