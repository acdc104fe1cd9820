package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		text string
		enc  Encoding
	}{
		{"utf8", []byte("héllo"), "héllo", EncodingUTF8},
		{"empty", nil, "", EncodingUTF8},
		{"utf8 bom", []byte("\xEF\xBB\xBFhi"), "hi", EncodingUTF8BOM},
		{"utf16 le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", EncodingUTF16LE},
		{"utf16 be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", EncodingUTF16BE},
		{"latin1", []byte("caf\xe9"), "café", EncodingLatin1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.enc, enc)
		})
	}
}

func TestDecodeBinary(t *testing.T) {
	_, _, err := Decode([]byte("ELF\x00\x01\x02"))
	assert.ErrorIs(t, err, ErrBinaryFile)
}

func TestEncodeRoundTrip(t *testing.T) {
	inputs := map[Encoding][]byte{
		EncodingUTF8:    []byte("plain ✓"),
		EncodingUTF8BOM: []byte("\xEF\xBB\xBFbom ✓"),
		EncodingUTF16LE: {0xFF, 0xFE, 'o', 0, 'k', 0, '\n', 0},
		EncodingUTF16BE: {0xFE, 0xFF, 0, 'o', 0, 'k', 0, '\n'},
		EncodingLatin1:  []byte("na\xefve"),
	}
	for enc, data := range inputs {
		t.Run(enc.String(), func(t *testing.T) {
			text, got, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, enc, got)

			back, err := Encode(text, enc)
			require.NoError(t, err)
			assert.Equal(t, data, back)
		})
	}
}

func TestEncodeLatin1Unrepresentable(t *testing.T) {
	_, err := Encode("snowman ☃", EncodingLatin1)
	assert.Error(t, err)
}
