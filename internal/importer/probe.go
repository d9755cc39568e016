package importer

import (
	"encoding/binary"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aurorafx/sceneimport/internal/sceneio"
)

// MaxHeaderSearchBytes bounds how much of a file SearchFileHeaderForToken
// is willing to read looking for a signature token. Overridable from
// config (the signature-probe byte budget) for deployments importing
// formats with signatures further into the file than the default covers.
var MaxHeaderSearchBytes = 200

// GetExtension returns the lowercase extension of path without the
// leading dot, or "" if path has none.
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// SimpleExtensionCheck reports whether path's extension matches any of
// the given extensions (case-insensitive, no leading dot expected).
func SimpleExtensionCheck(path string, exts ...string) bool {
	got := GetExtension(path)
	if got == "" {
		return false
	}
	for _, e := range exts {
		if got == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// SearchFileHeaderForToken performs a case-insensitive search for any
// of tokens within the first searchBytes bytes of path, read through
// io. searchBytes is clamped to MaxHeaderSearchBytes.
func SearchFileHeaderForToken(ioh sceneio.IO, path string, tokens []string, searchBytes int) bool {
	if searchBytes <= 0 || searchBytes > MaxHeaderSearchBytes {
		searchBytes = MaxHeaderSearchBytes
	}

	stream, err := ioh.Open(path)
	if err != nil {
		return false
	}
	defer stream.Close()

	buf := make([]byte, searchBytes)
	n, _ := stream.Read(buf)
	if n == 0 {
		return false
	}
	header := foldASCIILower(buf[:n])

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(header, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}

// foldASCIILower decodes b as UTF-8 and lowercases every rune with
// unicode.ToLower, so non-ASCII letters are folded too; bytes that are
// not valid UTF-8 become U+FFFD. This gives a rudimentary unicode-aware
// case fold without a full Unicode normalization pass for header
// sniffing.
func foldASCIILower(b []byte) string {
	out := make([]rune, 0, len(b))
	for _, r := range string(b) {
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}

// MagicSize is the byte width of a magic token compared by CheckMagicToken.
type MagicSize int

// Supported magic token widths.
const (
	MagicSize1  MagicSize = 1
	MagicSize2  MagicSize = 2
	MagicSize4  MagicSize = 4
	MagicSize8  MagicSize = 8
	MagicSize16 MagicSize = 16
)

// CheckMagicToken compares the size-byte slice at offset in path
// against each of the given tokens (each must be len(size) bytes). For
// 2- and 4-byte sizes it also tries the byte-swapped form of each
// token, so a magic defined in one endianness still matches a file
// written in the other.
func CheckMagicToken(ioh sceneio.IO, path string, tokens [][]byte, offset int64, size MagicSize) bool {
	stream, err := ioh.Open(path)
	if err != nil {
		return false
	}
	defer stream.Close()

	if _, err := stream.Seek(offset, 0); err != nil {
		return false
	}

	buf := make([]byte, int(size))
	n, err := stream.Read(buf)
	if err != nil || n != int(size) {
		return false
	}

	for _, tok := range tokens {
		if len(tok) != int(size) {
			continue
		}
		if byteEqual(buf, tok) {
			return true
		}
		if size == MagicSize2 || size == MagicSize4 {
			if byteEqual(buf, swapBytes(tok)) {
				return true
			}
		}
	}
	return false
}

func byteEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func swapBytes(tok []byte) []byte {
	switch len(tok) {
	case 2:
		v := binary.BigEndian.Uint16(tok)
		swapped := make([]byte, 2)
		binary.LittleEndian.PutUint16(swapped, v)
		return swapped
	case 4:
		v := binary.BigEndian.Uint32(tok)
		swapped := make([]byte, 4)
		binary.LittleEndian.PutUint32(swapped, v)
		return swapped
	default:
		return tok
	}
}
