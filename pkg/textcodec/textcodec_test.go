package textcodec

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTripsPrintableASCII(t *testing.T) {
	f := func(s string) bool {
		ascii := toPrintableASCII(s)
		encoded, err := Encode(ascii)
		if err != nil {
			return false
		}
		return Decode(encoded) == ascii
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 200}))
}

func toPrintableASCII(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7E {
			out = append(out, r)
		}
	}
	return string(out)
}

func TestDecodeKnownShiftJISBytes(t *testing.T) {
	// "中山" (Nakayama, a JRA venue) in Shift-JIS.
	nakayama := []byte{0x92, 0x86, 0x8E, 0x52}
	assert.Equal(t, "中山", Decode(nakayama))
}

func TestDecodeMalformedDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Decode([]byte{0xFF, 0xFE, 0x81})
	})
}

func TestNormalizeHalfwidthKatakanaToFullwidth(t *testing.T) {
	// Halfwidth katakana "ｶﾞﾝﾊﾞﾙ" style strings fold to fullwidth.
	halfwidth := "ｱｲｳｴｵ"
	got := Normalize(halfwidth)
	assert.Equal(t, "アイウエオ", got)
}

func TestNormalizeFullwidthASCIIToHalfwidth(t *testing.T) {
	fullwidth := "ABC123"
	// Build the fullwidth variant explicitly to avoid relying on source
	// file encoding assumptions.
	var fw []rune
	for _, r := range fullwidth {
		fw = append(fw, r+0xFEE0)
	}
	got := Normalize(string(fw))
	assert.Equal(t, fullwidth, got)
}

func TestNormalizeIsFixpoint(t *testing.T) {
	f := func(s string) bool {
		once := Normalize(s)
		twice := Normalize(once)
		return once == twice
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 200}))
}

func TestNormalizePreservesOtherCodePoints(t *testing.T) {
	kanji := "日本中央競馬会"
	assert.Equal(t, kanji, Normalize(kanji))
}
