package subway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestDecodeMixedEncoding(t *testing.T) {
	t.Run("plain UTF-8", func(t *testing.T) {
		text, enc, err := decodeMixedEncoding([]byte("line,station\n1호선,시청\n"))
		require.NoError(t, err)
		assert.Equal(t, "utf-8", enc)
		assert.Contains(t, text, "시청")
	})

	t.Run("UTF-8 with BOM", func(t *testing.T) {
		bom := []byte{0xEF, 0xBB, 0xBF}
		raw := append(append([]byte{}, bom...), []byte("line,station\n1호선,시청\n")...)
		text, enc, err := decodeMixedEncoding(raw)
		require.NoError(t, err)
		assert.Equal(t, "utf-8-sig", enc)
		assert.Contains(t, text, "시청")
	})

	t.Run("legacy EUC-KR falls back", func(t *testing.T) {
		encoded, err := korean.EUCKR.NewEncoder().String("line,station\n1호선,시청\n")
		require.NoError(t, err)

		text, enc, err := decodeMixedEncoding([]byte(encoded))
		require.NoError(t, err)
		assert.Equal(t, "euc-kr", enc)
		assert.Contains(t, text, "시청")
	})
}
