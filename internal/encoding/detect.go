// Package encoding normalizes event files of unknown encoding into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encodings Detect can report.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO8859_9   Charset = "ISO-8859-9"
)

// sampleSize is how much of the input detection looks at.
const sampleSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// chardetNames maps chardet results onto the charsets we decode. Anything else falls back to
// Windows-1252.
var chardetNames = map[string]Charset{
	"UTF-8":        UTF8,
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-9":   ISO8859_9,
}

// Detect reports the charset of sample and the length of its byte order mark, if any.
// A BOM wins, then UTF-8 validity, then the chardet heuristic, then Windows-1252.
func Detect(sample []byte) (Charset, int) {
	for _, b := range boms {
		if bytes.HasPrefix(sample, b.prefix) {
			return b.charset, len(b.prefix)
		}
	}

	if utf8.Valid(sample) {
		return UTF8, 0
	}

	if res, err := chardet.NewTextDetector().DetectBest(sample); err == nil {
		if cs, ok := chardetNames[res.Charset]; ok {
			return cs, 0
		}
	}

	return Windows1252, 0
}

func decoder(cs Charset) xenc.Encoding {
	switch cs {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case ISO8859_9:
		return charmap.ISO8859_9
	case Windows1252:
		return charmap.Windows1252
	}

	return nil
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8 with any UTF-8 BOM removed.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peeking input: %w", err)
	}

	cs, bomLen := Detect(sample)

	enc := decoder(cs)
	if enc == nil {
		_, _ = br.Discard(bomLen)
		return br, cs, nil
	}

	// UTF-16 decoders consume their own BOM.
	return transform.NewReader(br, enc.NewDecoder()), cs, nil
}
