package field

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Errors describing why a segment could not be decoded with a charset.
var (
	// ErrUnsupportedCharset is returned by a Decoder when it does not know the
	// named charset.
	ErrUnsupportedCharset = errors.New("unsupported byte encoding")

	// ErrInvalidByteSequence is reported when the charset is known, but the
	// bytes are not valid in that charset.
	ErrInvalidByteSequence = errors.New("invalid byte sequence for charset")

	// ErrUndetectableCharset is reported when charset detection was needed and
	// could not produce a usable charset.
	ErrUndetectableCharset = errors.New("unable to detect charset")
)

// Decoder represents the character decoding function used by the field
// package for transforming header text in arbitrary charsets into native
// unicode.
//
// Any byte present in the input that is invalid for the source charset should
// be replaced with unicode.ReplacementChar. If the charset is not supported, an
// error wrapping ErrUnsupportedCharset should be returned.
type Decoder func(charset string, b []byte) (string, error)

// Detection is the result of guessing the charset of a byte string.
// Confidence runs from 0 to 100. An empty Charset means nothing was detected.
type Detection struct {
	Charset    string
	Confidence int
}

// Detector guesses the charset of a byte string. Implementations must be pure:
// the result depends only on the input and no state is kept between calls.
type Detector interface {
	Detect(b []byte) Detection
}

// DetectorFunc adapts a function into a Detector.
type DetectorFunc func(b []byte) Detection

// Detect calls f(b).
func (f DetectorFunc) Detect(b []byte) Detection {
	return f(b)
}

var (
	// CharsetDecoder is the Decoder used by a WordDecoder that has none of
	// its own. To make use of a decoder that supports a broad range of
	// encodings, import the encoding package:
	//  import _ "github.com/zostay/go-email-cleanse/message/header/encoding"
	CharsetDecoder Decoder = DefaultCharsetDecoder

	// CharsetDetector is the Detector used by a WordDecoder that has none of
	// its own. The encoding package replaces it with a statistical detector.
	CharsetDetector Detector = DefaultCharsetDetector
)

// DefaultCharsetDecoder is the default decoder. It is able to handle us-ascii,
// iso-8859-1 (a.k.a. latin1), and utf-8 only. Anything else will result in an
// error.
//
// When us-ascii is input, any 8-bit character (i.e., bytes greater than 0x7f)
// will be translated into unicode.ReplacementChar.
//
// When utf-8 is input, every byte that is not part of a valid utf-8 sequence
// is translated into unicode.ReplacementChar.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	switch strings.ToLower(charset) {
	case "us-ascii", "ascii", "":
		var s strings.Builder
		for _, c := range b {
			if c > unicode.MaxASCII {
				s.WriteRune(unicode.ReplacementChar)
			} else {
				s.WriteByte(c)
			}
		}
		return s.String(), nil
	case "iso-8859-1", "latin1":
		var s strings.Builder
		for _, c := range b {
			s.WriteRune(rune(c))
		}
		return s.String(), nil
	case "utf-8", "utf8":
		return lossyUTF8(b), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedCharset, charset)
	}
}

// lossyUTF8 reads b as utf-8, writing one unicode.ReplacementChar for each
// byte that does not belong to a valid sequence.
func lossyUTF8(b []byte) string {
	var s strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		s.WriteRune(r)
		b = b[size:]
	}
	return s.String()
}

// DefaultCharsetDetector is the default detector. It only recognizes valid
// utf-8 and reports nothing for anything else.
var DefaultCharsetDetector = DetectorFunc(func(b []byte) Detection {
	if utf8.Valid(b) {
		return Detection{Charset: "utf-8", Confidence: 100}
	}
	return Detection{}
})

// CharsetDecoderToCharsetReader transforms a Decoder defined here into the
// interface used by mime.WordDecoder and similar readers.
func CharsetDecoderToCharsetReader(decode Decoder) func(string, io.Reader) (io.Reader, error) {
	return func(charset string, r io.Reader) (io.Reader, error) {
		// fail before consuming r when the charset is unsupported
		if _, err := decode(charset, nil); err != nil {
			return nil, err
		}

		bs, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		s, err := decode(charset, bs)
		if err != nil {
			return nil, err
		}

		return strings.NewReader(s), nil
	}
}

// DecodeError reports a segment whose declared charset failed and for which
// detection did not produce a usable replacement. The text returned with this
// error was decoded as utf-8 with invalid bytes replaced.
type DecodeError struct {
	Charset  string // the declared charset, "us-ascii" when none was declared
	Detected string // the detected charset, if detection produced one
	Reason   error  // why the declared charset failed
	Err      error  // why the fallback failed
}

// Error returns the error message.
func (err *DecodeError) Error() string {
	if err.Detected != "" {
		return fmt.Sprintf("decoding %q failed (%v), detected charset %q failed: %v",
			err.Charset, err.Reason, err.Detected, err.Err)
	}
	return fmt.Sprintf("decoding %q failed (%v): %v", err.Charset, err.Reason, err.Err)
}

// Unwrap returns both the fallback error and the reason the declared charset
// failed, so errors.Is works with either.
func (err *DecodeError) Unwrap() []error {
	return []error{err.Err, err.Reason}
}
