package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-cleanse/message/header/encoding"
	"github.com/zostay/go-email-cleanse/message/header/field"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"koi8-r", "KOI8-R", "iso-2022-jp", "windows-1252", "cp1252", "greek"} {
		e, err := encoding.Lookup(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, e, name)
	}

	_, err := encoding.Lookup("x-martian")
	assert.ErrorIs(t, err, field.ErrUnsupportedCharset)
}

func TestCharsetDecoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		charset string
		in      []byte
		out     string
	}{
		{"koi8-r", []byte{0xe2, 0xd9, 0xd3, 0xd4, 0xd2, 0xcf}, "Быстро"},
		{"windows-1252", []byte{'a', ' ', 0x97, ' ', 'b'}, "a — b"},
		{"iso-8859-2", []byte{0xe9, 'r', 'd', 'e', 'k', 'e', 's'}, "érdekes"},
		{"ISO-8859-1", []byte{'p', 0xf6, 's', 't', 'a', 'l'}, "pöstal"},
		{"us-ascii", []byte("plain"), "plain"},
		{"UTF-8", []byte("Grüße"), "Grüße"},
	}

	for _, tt := range tests {
		s, err := encoding.CharsetDecoder(tt.charset, tt.in)
		assert.NoError(t, err, tt.charset)
		assert.Equal(t, tt.out, s, tt.charset)
	}

	_, err := encoding.CharsetDecoder("foobar", []byte("x"))
	assert.ErrorIs(t, err, field.ErrUnsupportedCharset)
}

func TestInstalled(t *testing.T) {
	t.Parallel()

	// importing the package replaces the defaults in field
	s, err := field.Decode("=?koi8-r?B?4tnT1NLP19nQz8zOyc3PIMkgzcHMz9rB1NLB1M7P?=")
	require.NoError(t, err)
	assert.Equal(t, "Быстровыполнимо и малозатратно", s)

	_, ok := field.CharsetDetector.(*encoding.Detector)
	assert.True(t, ok)
}
