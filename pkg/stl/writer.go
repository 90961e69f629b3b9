package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"meshwalk/pkg/errors"
	"meshwalk/pkg/geometry"
)

// EncodeBinary writes m in the packed binary STL encoding. The mesh name is
// placed in the 80-byte header; coordinates round-trip byte-exactly since
// they are stored as float32 throughout.
func EncodeBinary(m *Mesh, w io.Writer) error {
	if len(m.Facets) != len(m.Normals) {
		return errors.New(errors.ErrCodeInvalidInput,
			"mesh has %d facets but %d normals", len(m.Facets), len(m.Normals))
	}

	buf := bufio.NewWriter(w)

	var header [binaryHeaderSize]byte
	copy(header[:], m.Name)
	buf.Write(header[:])

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(m.Facets)))
	buf.Write(count[:])

	rec := make([]byte, binaryRecordSize)
	for i, f := range m.Facets {
		putVec(rec, 0, m.Normals[i])
		putVec(rec, 12, f[0])
		putVec(rec, 24, f[1])
		putVec(rec, 36, f[2])
		rec[48], rec[49] = 0, 0
		buf.Write(rec)
	}
	return buf.Flush()
}

// EncodeText writes m in the text STL encoding. Coordinates are formatted
// with the shortest representation that parses back to the same float32, so
// a text round-trip preserves values exactly.
func EncodeText(m *Mesh, w io.Writer) error {
	if len(m.Facets) != len(m.Normals) {
		return errors.New(errors.ErrCodeInvalidInput,
			"mesh has %d facets but %d normals", len(m.Facets), len(m.Normals))
	}

	buf := bufio.NewWriter(w)

	name := m.Name
	if name == "" {
		name = "mesh"
	}
	fmt.Fprintf(buf, "solid %s\n", name)
	for i, f := range m.Facets {
		n := m.Normals[i]
		fmt.Fprintf(buf, "facet normal %s %s %s\n", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
		buf.WriteString("  outer loop\n")
		for _, v := range f {
			fmt.Fprintf(buf, "    vertex %s %s %s\n", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
		}
		buf.WriteString("  endloop\n")
		buf.WriteString("endfacet\n")
	}
	fmt.Fprintf(buf, "endsolid %s\n", name)
	return buf.Flush()
}

func putVec(rec []byte, off int, v geometry.Vec3) {
	binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(rec[off+4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(rec[off+8:], math.Float32bits(v[2]))
}

func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'e', -1, 32)
}
