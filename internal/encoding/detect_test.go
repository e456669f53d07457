package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/cuotas/internal/encoding"
)

const header = "payment_id;status;amount;descripción\n"

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, cs, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), cs
}

func TestNewUTF8Reader(t *testing.T) {
	windows1252, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	type testCase struct {
		name        string
		input       []byte
		wantCharset []encoding.Charset
	}

	tests := []testCase{
		{name: "utf-8 passthrough", input: []byte(header), wantCharset: []encoding.Charset{encoding.UTF8}},
		{name: "utf-8 bom stripped", input: append([]byte{0xEF, 0xBB, 0xBF}, header...), wantCharset: []encoding.Charset{encoding.UTF8}},
		{name: "utf-16 little endian", input: utf16, wantCharset: []encoding.Charset{encoding.UTF16LE}},
		// chardet cannot tell the Latin variants apart on a short sample; both decode this text the same.
		{name: "windows-1252", input: windows1252, wantCharset: []encoding.Charset{encoding.Windows1252, encoding.ISO8859_9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cs := readAll(t, tt.input)
			assert.Equal(t, header, got)
			assert.Contains(t, tt.wantCharset, cs)
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, cs := readAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, cs)
}

func TestDetect_BOMLength(t *testing.T) {
	cs, n := encoding.Detect([]byte{0xFE, 0xFF, 0x00, 'a'})
	assert.Equal(t, encoding.UTF16BE, cs)
	assert.Equal(t, 2, n)
}
