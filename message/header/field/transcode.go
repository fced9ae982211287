package field

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultCharset is the charset assumed for text that declares none.
const DefaultCharset = "us-ascii"

const replacement = string(utf8.RuneError)

// WordDecoder decodes header bodies holding RFC 2047 encoded-words. The zero
// value is ready to use and falls back on CharsetDecoder and CharsetDetector.
type WordDecoder struct {
	// CharsetDecoder turns bytes in a named charset into unicode. When nil,
	// the package CharsetDecoder is used.
	CharsetDecoder Decoder

	// Detector guesses the charset of a segment whose declared charset is
	// unsupported or does not match its bytes. When nil, the package
	// CharsetDetector is used.
	Detector Detector
}

func (d *WordDecoder) decoder() Decoder {
	if d.CharsetDecoder != nil {
		return d.CharsetDecoder
	}
	return CharsetDecoder
}

func (d *WordDecoder) detector() Detector {
	if d.Detector != nil {
		return d.Detector
	}
	return CharsetDetector
}

// DecodeHeader transforms a single header field body and looks for MIME word
// encoded field values. When they are found, these are decoded into native
// unicode. A body without encoded-words that is valid utf-8 is returned
// unchanged.
//
// Decoding never stops early. A segment that cannot be decoded with its charset
// or a detected one is decoded lossily and the returned error (holding one
// *DecodeError per such segment) is returned together with the full text.
func (d *WordDecoder) DecodeHeader(body string) (string, error) {
	if !HasEncodedWords(body) && utf8.ValidString(body) {
		return body, nil
	}

	var (
		out  strings.Builder
		errs []error
	)
	for _, seg := range Split(SeparateWords(body)) {
		s, err := d.DecodeSegment(seg.Bytes, seg.Charset)
		if err != nil {
			errs = append(errs, err)
		}
		out.WriteString(s)
	}

	return out.String(), errors.Join(errs...)
}

// DecodeSegment decodes the bytes of one segment using the given charset.
// When charset is empty and the bytes are valid utf-8, they are returned as
// they are. Otherwise an empty charset means us-ascii.
//
// If the charset is not supported or the bytes are not valid in it, the
// charset is detected from the bytes and they are decoded with the guess,
// replacing invalid bytes with unicode.ReplacementChar. If detection fails,
// the bytes are decoded as utf-8 with replacement and a *DecodeError is
// returned with the text.
func (d *WordDecoder) DecodeSegment(b []byte, charset string) (string, error) {
	if charset == "" {
		if utf8.Valid(b) {
			return string(b), nil
		}
		charset = DefaultCharset
	}

	s, reason := d.decodeStrict(charset, b)
	if reason == nil {
		return s, nil
	}

	guess := d.detector().Detect(b)
	if guess.Charset == "" {
		return lossyUTF8(b), &DecodeError{
			Charset: charset,
			Reason:  reason,
			Err:     ErrUndetectableCharset,
		}
	}

	s, err := d.decoder()(guess.Charset, b)
	if err != nil {
		return lossyUTF8(b), &DecodeError{
			Charset:  charset,
			Detected: guess.Charset,
			Reason:   reason,
			Err:      err,
		}
	}

	return s, nil
}

// decodeStrict decodes b and reports ErrInvalidByteSequence if the decoder had
// to replace anything.
func (d *WordDecoder) decodeStrict(charset string, b []byte) (string, error) {
	s, err := d.decoder()(charset, b)
	if err != nil {
		return "", err
	}

	if isUTF8Charset(charset) {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w %q", ErrInvalidByteSequence, charset)
		}
		return s, nil
	}

	// replacements already present in the input do not count
	if strings.Count(s, replacement) > bytes.Count(b, []byte(replacement)) {
		return "", fmt.Errorf("%w %q", ErrInvalidByteSequence, charset)
	}

	return s, nil
}

func isUTF8Charset(charset string) bool {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// Decode decodes the header body using a zero WordDecoder. See
// WordDecoder.DecodeHeader.
func Decode(body string) (string, error) {
	var dec WordDecoder
	return dec.DecodeHeader(body)
}

// DecodeSegment decodes bytes in the given charset using a zero WordDecoder.
// See WordDecoder.DecodeSegment.
func DecodeSegment(b []byte, charset string) (string, error) {
	var dec WordDecoder
	return dec.DecodeSegment(b, charset)
}
