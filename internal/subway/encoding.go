package subway

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeMixedEncoding probes a raw CSV byte slice against the ordered
// list of encodings the input contract documents: UTF-8 with BOM,
// plain UTF-8, then legacy Korean encodings (cp949/euc-kr, which
// golang.org/x/text/encoding/korean.EUCKR decodes as a superset). The
// first encoding that successfully decodes the data wins; its name is
// returned for the load report.
func decodeMixedEncoding(raw []byte) (text string, encodingName string, err error) {
	if bom, rest, ok := stripUTF8BOM(raw); ok {
		return bom, rest, nil
	}
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	decoded, decErr := decodeWith(korean.EUCKR.NewDecoder(), raw)
	if decErr == nil {
		return decoded, "euc-kr", nil
	}
	return "", "", fmt.Errorf("undecodable input: tried utf-8-sig, utf-8, euc-kr: %w", decErr)
}

func stripUTF8BOM(raw []byte) (string, string, bool) {
	decoder := unicode.UTF8BOM.NewDecoder()
	decoded, err := decodeWith(decoder, raw)
	if err != nil {
		return "", "", false
	}
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		return "", "", false
	}
	return decoded, "utf-8-sig", true
}

func decodeWith(decoder transform.Transformer, raw []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(raw), decoder)
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("decoded output is not valid UTF-8")
	}
	return string(out), nil
}
