package workspace

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the on-disk form of a file, remembered so saving writes the
// file back the way it was read.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
	// EncodingLatin1 is the fallback for files that are not valid UTF-8.
	EncodingLatin1
)

// String returns the encoding name shown in the status line.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF8BOM:
		return "UTF-8 BOM"
	case EncodingUTF16LE:
		return "UTF-16 LE"
	case EncodingUTF16BE:
		return "UTF-16 BE"
	case EncodingLatin1:
		return "ISO-8859-1"
	default:
		return "unknown"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EncodingLatin1:
		return charmap.ISO8859_1
	default:
		return unicode.UTF8
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts file content to text. A byte-order mark selects UTF-8 or
// UTF-16 and is stripped; content without one is UTF-8 when valid and
// ISO-8859-1 otherwise. Content with NUL bytes and no UTF-16 mark is
// rejected as binary.
func Decode(data []byte) (string, Encoding, error) {
	var enc Encoding
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		enc = EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		enc = EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		enc = EncodingUTF16BE
	case bytes.IndexByte(data, 0) >= 0:
		return "", EncodingUTF8, ErrBinaryFile
	case utf8.Valid(data):
		return string(data), EncodingUTF8, nil
	default:
		enc = EncodingLatin1
	}

	dec := unicode.BOMOverride(enc.codec().NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), enc, nil
}

// Encode converts text back to the file's encoding, restoring its
// byte-order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc == EncodingUTF8 {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(enc.codec().NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}
