// Package encoding provides a replacement decoder and a charset detector for
// use with field.CharsetDecoder and field.CharsetDetector. This loads all the
// encodings provided with:
//
// * golang.org/x/text/encoding/ianaindex
//
// * golang.org/x/text/encoding/htmlindex
//
// and charset detection from github.com/gogs/chardet. Importing this package
// for side effects installs both:
//
//	import _ "github.com/zostay/go-email-cleanse/message/header/encoding"
//
// This will make the size of your compiled binaries considerably larger. But it
// will also give your code the ability to decode pretty much any character set
// it might encounter in the wild wild world of email.
package encoding

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-email-cleanse/message/header/field"
)

func init() {
	field.CharsetDecoder = CharsetDecoder
	field.CharsetDetector = &Detector{}
}

// Lookup finds the encoding for the named charset. MIME and IANA names and
// aliases are tried first, then the labels of the WHATWG encoding standard,
// which cover a number of labels commonly seen in mail but never registered.
func Lookup(charset string) (encoding.Encoding, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err == nil && e != nil {
		return e, nil
	}

	e, err = ianaindex.IANA.Encoding(charset)
	if err == nil && e != nil {
		return e, nil
	}

	e, err = htmlindex.Get(charset)
	if err == nil && e != nil {
		return e, nil
	}

	return nil, fmt.Errorf("%w %q", field.ErrUnsupportedCharset, charset)
}

// CharsetDecoder provides a replacement decoder for field.CharsetDecoder, which
// can decode a wide range of rare and unusual character sets. Bytes invalid in
// the charset are replaced with unicode.ReplacementChar.
func CharsetDecoder(charset string, b []byte) (string, error) {
	switch strings.ToLower(charset) {
	case "us-ascii", "ascii", "", "iso-8859-1", "latin1", "utf-8", "utf8":
		return field.DefaultCharsetDecoder(charset, b)
	}

	e, err := Lookup(charset)
	if err != nil {
		return "", err
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", field.ErrInvalidByteSequence, charset, err)
	}

	return string(eb), nil
}
