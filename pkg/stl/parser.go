// Package stl decodes and encodes triangulated surface meshes in the STL
// format, in both the text ("solid ... endsolid") and the packed binary
// encoding.
//
// Decode auto-detects the encoding: input that starts with the "solid"
// token, is large enough to rule out a tiny binary header, and shows
// structural keywords in its initial window is tried as text first, falling
// back to binary when the text scan yields no facets. Both decoders produce
// float32 coordinates, the binary encoding's native precision, so meshes
// compare identically regardless of the source encoding.
package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"meshwalk/pkg/errors"
	"meshwalk/pkg/geometry"
)

const (
	binaryHeaderSize = 80
	binaryRecordSize = 50
	// binaryMinSize is the 80-byte header plus the 4-byte triangle count.
	binaryMinSize = binaryHeaderSize + 4

	// textMinSize guards against tiny binary files whose header happens to
	// begin with "solid".
	textMinSize = 100
	// textProbeSize is how many leading bytes are scanned for structural
	// keywords during detection.
	textProbeSize = 512
)

// num matches decimal and exponential float tokens. Tokens that match but
// fail strconv (e.g. "1.2.3") cause the enclosing facet block to be skipped.
const num = `([0-9eE.+-]+)`

var (
	facetBlockRe = regexp.MustCompile(`(?is)facet\s+normal\s+` + num + `\s+` + num + `\s+` + num +
		`\s*outer\s+loop` +
		`\s*vertex\s+` + num + `\s+` + num + `\s+` + num +
		`\s*vertex\s+` + num + `\s+` + num + `\s+` + num +
		`\s*vertex\s+` + num + `\s+` + num + `\s+` + num +
		`\s*endloop\s*endfacet`)

	solidNameRe = regexp.MustCompile(`(?i)^\s*solid[ \t]+(\S+)`)
)

// RecordError reports a binary triangle record that could not be read.
type RecordError struct {
	Index  int   // zero-based triangle index
	Offset int64 // byte offset of the record start
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("truncated record for triangle %d at byte offset %d", e.Index, e.Offset)
}

// Decoder controls optional decode behavior. The zero value is ready to use.
type Decoder struct {
	// Warn receives diagnostics for recoverable problems, such as a text
	// facet block whose numeric tokens fail to parse. Nil disables them.
	Warn func(format string, args ...any)
}

// Decode parses STL bytes in either encoding using a default Decoder.
func Decode(data []byte) (*Mesh, error) {
	return Decoder{}.Decode(data)
}

// Decode parses STL bytes, auto-detecting the encoding.
//
// Input classified as text is decoded as text first; if that yields no
// facets the decoder falls back to binary. When both attempts fail the
// returned error carries the FORMAT_UNRECOGNIZED code and chains the binary
// failure, with the text failure summarized in the message. An explicitly
// empty binary mesh (triangle count 0, exactly 84 bytes) is valid and
// returns a Mesh with zero facets.
func (d Decoder) Decode(data []byte) (*Mesh, error) {
	var textErr error
	if looksLikeText(data) {
		mesh, err := d.decodeText(data)
		if err == nil {
			return mesh, nil
		}
		textErr = err
	}

	mesh, binErr := d.decodeBinary(data)
	if binErr == nil {
		return mesh, nil
	}
	if textErr != nil {
		return nil, errors.Wrap(errors.ErrCodeFormatUnrecognized, binErr,
			"not decodable as text STL (%s) or binary STL", errors.UserMessage(textErr))
	}
	return nil, binErr
}

// looksLikeText reports whether data should be tried as text STL first.
// The "solid" prefix alone is not enough: a binary header may start with
// those bytes, so the input must also exceed textMinSize and show at least
// one structural keyword in its initial window.
func looksLikeText(data []byte) bool {
	if len(data) <= textMinSize {
		return false
	}
	prefix := data
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	if !strings.EqualFold(string(prefix), "solid") {
		return false
	}
	probe := data
	if len(probe) > textProbeSize {
		probe = probe[:textProbeSize]
	}
	window := strings.ToLower(strings.ToValidUTF8(string(probe), ""))
	return strings.Contains(window, "facet") ||
		strings.Contains(window, "vertex") ||
		strings.Contains(window, "endsolid")
}

// decodeText scans for facet blocks in permissively decoded text. Invalid
// byte sequences are dropped rather than failing the decode. A block whose
// numeric tokens fail to parse is skipped with a warning; only zero matched
// blocks is an error.
func (d Decoder) decodeText(data []byte) (*Mesh, error) {
	text := strings.ToValidUTF8(string(data), "")

	mesh := &Mesh{}
	if m := solidNameRe.FindStringSubmatch(text); m != nil {
		mesh.Name = m[1]
	}

	for _, match := range facetBlockRe.FindAllStringSubmatch(text, -1) {
		vals, err := parseFloats(match[1:13])
		if err != nil {
			d.warn("skipping malformed facet block: %v", err)
			continue
		}
		mesh.Normals = append(mesh.Normals, geometry.Vec3{vals[0], vals[1], vals[2]})
		mesh.Facets = append(mesh.Facets, Facet{
			{vals[3], vals[4], vals[5]},
			{vals[6], vals[7], vals[8]},
			{vals[9], vals[10], vals[11]},
		})
	}

	if len(mesh.Facets) == 0 {
		return nil, errors.New(errors.ErrCodeTextDecode, "no well-formed facet blocks found")
	}
	return mesh, nil
}

func parseFloats(tokens []string) ([12]float32, error) {
	var vals [12]float32
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return vals, fmt.Errorf("token %q: %w", tok, err)
		}
		vals[i] = float32(f)
	}
	return vals, nil
}

// decodeBinary parses the packed binary encoding: an ignored 80-byte header,
// a little-endian uint32 triangle count, then count 50-byte records of
// 12 little-endian float32s (normal, v1, v2, v3) and 2 attribute bytes that
// are read and discarded. The total size must match the declared count
// exactly.
func (d Decoder) decodeBinary(data []byte) (*Mesh, error) {
	if len(data) < binaryMinSize {
		return nil, errors.New(errors.ErrCodeBinaryDecode,
			"input too small for binary STL: %d bytes, need at least %d", len(data), binaryMinSize)
	}

	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	expected := int64(binaryMinSize) + int64(count)*binaryRecordSize
	if int64(len(data)) != expected {
		if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
			return nil, errors.New(errors.ErrCodeBinaryDecode,
				"input starts with \"solid\" but its %d bytes do not match the %d expected for %d binary triangles; likely a misclassified text file",
				len(data), expected, count)
		}
		return nil, errors.New(errors.ErrCodeBinaryDecode,
			"size mismatch: header declares %d triangles (%d bytes expected), got %d bytes",
			count, expected, len(data))
	}

	mesh := &Mesh{Name: headerName(data[:binaryHeaderSize])}
	if count == 0 {
		return mesh, nil
	}

	mesh.Facets = make([]Facet, 0, count)
	mesh.Normals = make([]geometry.Vec3, 0, count)
	offset := int64(binaryMinSize)
	for i := 0; i < int(count); i++ {
		if int64(len(data))-offset < binaryRecordSize {
			return nil, errors.Wrap(errors.ErrCodeBinaryDecode,
				&RecordError{Index: i, Offset: offset}, "decode triangle %d", i)
		}
		rec := data[offset : offset+binaryRecordSize]
		mesh.Normals = append(mesh.Normals, readVec(rec, 0))
		mesh.Facets = append(mesh.Facets, Facet{
			readVec(rec, 12),
			readVec(rec, 24),
			readVec(rec, 36),
		})
		offset += binaryRecordSize
	}
	return mesh, nil
}

// readVec decodes three consecutive little-endian float32s starting at off.
func readVec(rec []byte, off int) geometry.Vec3 {
	return geometry.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(rec[off:])),
		math.Float32frombits(binary.LittleEndian.Uint32(rec[off+4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(rec[off+8:])),
	}
}

// headerName extracts a printable name from the binary header, if any.
func headerName(header []byte) string {
	name := string(bytes.TrimRight(header, "\x00 "))
	for _, r := range name {
		if r < 0x20 || r > 0x7e {
			return ""
		}
	}
	return name
}

func (d Decoder) warn(format string, args ...any) {
	if d.Warn != nil {
		d.Warn(format, args...)
	}
}
