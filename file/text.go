package file

import (
	"bytes"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-bom"
	EncodingUTF16LE     = "utf-16le"
	EncodingUTF16BE     = "utf-16be"
	EncodingWindows1252 = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadText reads the file at path and decodes it to a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, _, err := Decode(data)
	if err != nil {
		return "", &os.PathError{Op: "decode", Path: path, Err: err}
	}
	return text, nil
}

// Decode converts data to a string and reports the detected encoding.
func Decode(data []byte) (string, string, error) {
	var (
		enc  encoding.Encoding
		name string
	)
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		enc, name = unicode.UTF8BOM, EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		enc, name = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		enc, name = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), EncodingUTF16BE
	case utf8.Valid(data):
		return string(data), EncodingUTF8, nil
	default:
		enc, name = charmap.Windows1252, EncodingWindows1252
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", name, err
	}
	return string(out), name, nil
}
