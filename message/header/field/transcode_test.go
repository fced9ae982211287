package field_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-cleanse/message/header/field"
)

// guess always guesses the same charset.
func guess(charset string) field.Detector {
	return field.DetectorFunc(func([]byte) field.Detection {
		return field.Detection{Charset: charset, Confidence: 50}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	s, err := field.Decode("=?utf-8?b?4pqA4pqB4pqC4pqD4pqE4pqF?=")
	assert.NoError(t, err)
	assert.Equal(t, "⚀⚁⚂⚃⚄⚅", s)
}

func TestDecode_Headers(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"=?iso-2022-jp?b?GyRCRW1CQE86GyhCIDxtb21vQHRhcm8ubmUuanA=?=": "桃太郎 <momo@taro.ne.jp",
		"honyaku@googlegroups.com":                                   "honyaku@googlegroups.com",
		`"=?UTF-8?Q?Igor_=C5=A0erko?="`:                              `"Igor Šerko"`,
		"=?UTF-8?B?5qGD5aSqLCDpg44=?= ":                              "桃太, 郎",
		"=?iso-2022-jp?b?GyRCRW1CQE86GyhCID?=\t<momo@taro.ne.jp>":    "桃太郎 <momo@taro.ne.jp>",
	}

	for encoded, expect := range tests {
		decoded, err := field.Decode(encoded)
		assert.NoError(t, err, encoded)
		assert.Equal(t, expect, decoded, encoded)
	}
}

func TestDecode_Subjects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"[ 201105161048 ] GewSt:=?UTF-8?B?IFdlZ2ZhbGwgZGVyIFZvcmzDpHVmaWdrZWl0?=":                                                            "[ 201105161048 ] GewSt: Wegfall der Vorläufigkeit",
		"[ 201105191633 ] =?UTF-8?B?IERyZWltb25hdHNmcmlzdCBmw7xyIFZlcnBmbGVndW5nc21laHJhdWZ3ZW5kdW4=?= =?UTF-8?B?Z2VuIGVpbmVzIFNlZW1hbm5z?=": "[ 201105191633 ] Dreimonatsfrist für Verpflegungsmehraufwendungen eines Seemanns",
		"=?KOI8-R?B?W1JFUS0wMDI1NDEtNDc5NzddIO/h7yAi89TSz8rGwdLGz9IiIDs=?=\r\n\t=?KOI8-R?B?Ry43MjkgKDEwKQ==?=":                               `[REQ-002541-47977] ОАО "Стройфарфор" ;G.729 (10)`,
		"[ 201101251025 ] ELStAM;=?UTF-8?B?IFZlcmbDvGd1bmcgdm9tIDIx?=. Januar 2011":                                                          "[ 201101251025 ] ELStAM; Verfügung vom 21. Januar 2011",
		"=?koi8-r?B?4tnT1NLP19nQz8zOyc3PIMkgzcHMz9rB1NLB1M7P?=":                                                                              "Быстровыполнимо и малозатратно",
		"=?ISO-8859-2?Q?=E9rdekes?=":                                                          "érdekes",
		`"=?iso-2022-jp?b?GyRCS1xGfCRPQDJFNyRKJGobKEI=?="`:                                    `"本日は晴天なり"`,
		"=?windows-1252?Q?Earn_your_degree_=97_on_your_time?=\n=?windows-1252?Q?_and_terms?=": "Earn your degree — on your time and terms",
		"=?foobar?q?p=F6stal?=":                                                               "pöstal",
	}

	for encoded, expect := range tests {
		decoded, err := field.Decode(encoded)
		assert.NoError(t, err, encoded)
		assert.Equal(t, expect, decoded, encoded)
	}
}

func TestDecode_PlainIsUnchanged(t *testing.T) {
	t.Parallel()

	for _, plain := range []string{
		"",
		"hello world",
		"  leading and trailing  ",
		"Re: [list] 50% off =? not really",
		"a=?b",
	} {
		once, err := field.Decode(plain)
		assert.NoError(t, err)
		assert.Equal(t, plain, once)

		twice, err := field.Decode(once)
		assert.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestDecode_PlainUTF8(t *testing.T) {
	t.Parallel()

	for _, plain := range []string{
		"Müller",
		"Grüße aus München",
		"桃太郎 <momo@taro.ne.jp>",
		"Быстровыполнимо",
	} {
		once, err := field.Decode(plain)
		assert.NoError(t, err)
		assert.Equal(t, plain, once)
	}

	// decoded text decodes to itself
	once, err := field.Decode("=?utf-8?q?M=C3=BCller?=")
	require.NoError(t, err)
	twice, err := field.Decode(once)
	assert.NoError(t, err)
	assert.Equal(t, "Müller", twice)
}

func TestWordDecoder_InvalidBytesAreDetected(t *testing.T) {
	t.Parallel()

	var seen []string
	dec := &field.WordDecoder{
		CharsetDecoder: field.DefaultCharsetDecoder,
		Detector: field.DetectorFunc(func(b []byte) field.Detection {
			seen = append(seen, string(b))
			return field.Detection{Charset: "iso-8859-1", Confidence: 50}
		}),
	}

	s, err := dec.DecodeSegment([]byte("caf\xe9"), "us-ascii")
	assert.NoError(t, err)
	assert.Equal(t, "café", s)

	s, err = dec.DecodeHeader("M\xfcller")
	assert.NoError(t, err)
	assert.Equal(t, "Müller", s)

	assert.Equal(t, []string{"caf\xe9", "M\xfcller"}, seen)

	// clean input never reaches the detector
	seen = nil
	s, err = dec.DecodeSegment([]byte("cafe"), "us-ascii")
	assert.NoError(t, err)
	assert.Equal(t, "cafe", s)
	s, err = dec.DecodeSegment([]byte("Müller"), "")
	assert.NoError(t, err)
	assert.Equal(t, "Müller", s)
	assert.Empty(t, seen)
}

func TestWordDecoder_AdjacentWords(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{}

	// each word decodes on its own, not as one malformed word
	s, err := dec.DecodeHeader("=?utf-8?b?4pqA?==?utf-8?b?4pqB?=")
	assert.NoError(t, err)
	assert.Equal(t, "⚀⚁", s)

	s, err = dec.DecodeHeader("=?utf-8?q?caf=C3=A9?==?iso-8859-1?q?_cr=E8me?=")
	assert.NoError(t, err)
	assert.Equal(t, "café crème", s)
}

func TestWordDecoder_UnknownCharset(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{Detector: guess("iso-8859-1")}
	s, err := dec.DecodeHeader("=?foobar?q?p=F6stal?=")
	assert.NoError(t, err)
	assert.Equal(t, "pöstal", s)
}

func TestWordDecoder_InvalidBytes(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{Detector: guess("iso-8859-1")}
	s, err := dec.DecodeHeader("=?utf-8?q?p=F6stal?=")
	assert.NoError(t, err)
	assert.Equal(t, "pöstal", s)

	// undeclared 8-bit text is not us-ascii either
	s, err = dec.DecodeSegment([]byte{'p', 0xf6, 's', 't', 'a', 'l'}, "")
	assert.NoError(t, err)
	assert.Equal(t, "pöstal", s)
}

func TestWordDecoder_GuessReplacesBadBytes(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{Detector: guess("utf-8")}
	s, err := dec.DecodeSegment([]byte{'o', 'k', 0xff}, "us-ascii")
	assert.NoError(t, err)
	assert.Equal(t, "ok�", s)
}

func TestWordDecoder_Undetectable(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{Detector: guess("")}
	s, err := dec.DecodeHeader("Re: =?foobar?q?p=F6stal?= =?utf-8?q?ok?=")
	assert.Equal(t, "Re:p�stalok", s)
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrUndetectableCharset)
	assert.ErrorIs(t, err, field.ErrUnsupportedCharset)

	var decErr *field.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "foobar", decErr.Charset)
	assert.Empty(t, decErr.Detected)

	s, err = dec.DecodeHeader("=?utf-8?q?p=F6stal?=")
	assert.Equal(t, "p�stal", s)
	assert.ErrorIs(t, err, field.ErrUndetectableCharset)
	assert.ErrorIs(t, err, field.ErrInvalidByteSequence)
}

func TestWordDecoder_UnusableGuess(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{
		CharsetDecoder: field.DefaultCharsetDecoder,
		Detector:       guess("x-martian"),
	}
	s, err := dec.DecodeSegment([]byte{'p', 0xf6}, "foobar")
	assert.Equal(t, "p�", s)

	var decErr *field.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "foobar", decErr.Charset)
	assert.Equal(t, "x-martian", decErr.Detected)
	assert.ErrorIs(t, err, field.ErrUnsupportedCharset)
	assert.NotErrorIs(t, err, field.ErrUndetectableCharset)
}

func TestWordDecoder_DefaultDetector(t *testing.T) {
	t.Parallel()

	dec := &field.WordDecoder{Detector: field.DefaultCharsetDetector}

	// raw utf-8 headers survive
	s, err := dec.DecodeHeader("Grüße aus München")
	assert.NoError(t, err)
	assert.Equal(t, "Grüße aus München", s)

	s, err = dec.DecodeHeader("=?foobar?b?R3LDvMOfZQ==?=")
	assert.NoError(t, err)
	assert.Equal(t, "Grüße", s)

	// latin-1 bytes are not utf-8 and the default detector gives up
	s, err = dec.DecodeHeader("=?foobar?b?R3L832U=?=")
	assert.Equal(t, "Gr��e", s)
	assert.ErrorIs(t, err, field.ErrUndetectableCharset)
}
