package runner

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// encodings maps the accepted -e names to decoders
var encodings = map[string]encoding.Encoding{
	"":           unicode.UTF8BOM,
	"utf-8":      unicode.UTF8BOM,
	"utf8":       unicode.UTF8BOM,
	"shift-jis":  japanese.ShiftJIS,
	"shift_jis":  japanese.ShiftJIS,
	"sjis":       japanese.ShiftJIS,
	"euc-jp":     japanese.EUCJP,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
}

// Encodings lists the accepted encoding names
func Encodings() []string {
	var names []string
	for name := range encodings {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Decode converts raw source bytes in the named encoding to UTF-8. A UTF-8
// byte order mark is dropped.
func Decode(raw []byte, name string) (string, error) {
	enc, ok := encodings[name]
	if !ok {
		return "", fmt.Errorf("unknown source encoding %q (supported: %v)", name, Encodings())
	}

	reader := transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("cannot decode source as %s: %w", name, err)
	}

	return string(decoded), nil
}
