package field

import (
	"bytes"
	"encoding/base64"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// encodedWord matches a single RFC 2047 encoded-word. The payload may not hold
// a question mark, which keeps the match from running into a following word
// when the separating whitespace is missing.
var encodedWord = regexp.MustCompile(`=\?([^?\s]+)\?([bBqQ])\?([^?]*)\?=`)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// Segment is a run of header text together with the charset it was declared
// in. Plain text between encoded-words has an empty Charset.
type Segment struct {
	Bytes   []byte
	Charset string
}

// IsEncoded returns true if the segment came from one or more encoded-words.
func (s Segment) IsEncoded() bool {
	return s.Charset != ""
}

// HasEncodedWords returns true if the body contains at least one
// syntactically valid encoded-word.
func HasEncodedWords(body string) bool {
	return encodedWord.MatchString(body)
}

// SeparateWords inserts a single space after every encoded-word that is
// immediately followed by something other than whitespace. Some generators
// emit adjacent encoded-words (or an encoded-word followed by punctuation)
// without the separator RFC 2047 requires, which would otherwise be read as
// one malformed word. Words already followed by whitespace or the end of the
// string are left alone.
func SeparateWords(body string) string {
	ixs := encodedWord.FindAllStringIndex(body, -1)
	if len(ixs) == 0 {
		return body
	}

	var buf strings.Builder
	buf.Grow(len(body) + len(ixs))
	last := 0
	for _, ix := range ixs {
		end := ix[1]
		buf.WriteString(body[last:end])
		last = end

		if end == len(body) {
			continue
		}

		r, _ := utf8.DecodeRuneInString(body[end:])
		if !unicode.IsSpace(r) {
			buf.WriteByte(' ')
		}
	}
	buf.WriteString(body[last:])

	return buf.String()
}

// Split breaks a header body into segments. Encoded-words are decoded from
// their transfer form (base64 or Q) into the raw bytes of their declared
// charset, but no charset decoding is done.
//
// A body without any encoded-word is returned as a single plain segment. A
// line of the body without encoded-words is kept verbatim. On lines holding
// encoded-words, the plain text around them is trimmed, whitespace between
// words is dropped, and consecutive words sharing a charset are merged into one
// segment. An encoded-word with a payload that cannot be decoded is kept as
// plain text.
func Split(body string) []Segment {
	if !HasEncodedWords(body) {
		return []Segment{{Bytes: []byte(body)}}
	}

	segs := make([]Segment, 0, 4)
	addPlain := func(text string) {
		if n := len(segs); n > 0 && !segs[n-1].IsEncoded() {
			segs[n-1].Bytes = append(segs[n-1].Bytes, ' ')
			segs[n-1].Bytes = append(segs[n-1].Bytes, text...)
			return
		}
		segs = append(segs, Segment{Bytes: []byte(text)})
	}

	for _, line := range splitLines(body) {
		ixs := encodedWord.FindAllStringSubmatchIndex(line, -1)
		if len(ixs) == 0 {
			segs = append(segs, Segment{Bytes: []byte(line)})
			continue
		}

		last := 0
		for _, ix := range ixs {
			if plain := strings.TrimSpace(line[last:ix[0]]); plain != "" {
				addPlain(plain)
			}
			last = ix[1]

			charset := normalizeCharset(line[ix[2]:ix[3]])
			payload, ok := decodePayload(line[ix[4]:ix[5]], line[ix[6]:ix[7]])
			if !ok {
				addPlain(line[ix[0]:ix[1]])
				continue
			}

			if n := len(segs); n > 0 && segs[n-1].Charset == charset {
				segs[n-1].Bytes = append(segs[n-1].Bytes, payload...)
				continue
			}

			segs = append(segs, Segment{Bytes: payload, Charset: charset})
		}

		if plain := strings.TrimSpace(line[last:]); plain != "" {
			addPlain(plain)
		}
	}

	return segs
}

// splitLines splits on any of CRLF, CR, or LF and drops a trailing empty line.
func splitLines(body string) []string {
	lines := lineBreak.Split(body, -1)
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// normalizeCharset lower-cases the charset and drops any RFC 2231 language
// suffix.
func normalizeCharset(charset string) string {
	if i := strings.IndexByte(charset, '*'); i >= 0 {
		charset = charset[:i]
	}
	return strings.ToLower(charset)
}

func decodePayload(enc, payload string) ([]byte, bool) {
	switch enc {
	case "b", "B":
		b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, false
		}
		return b, true
	default:
		return decodeQ(payload), true
	}
}

// decodeQ decodes the Q encoding. Underscores become spaces and =XX escapes
// become the byte they name. An equal sign not followed by two hex digits is
// kept as-is.
func decodeQ(payload string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(payload))
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		switch {
		case c == '_':
			buf.WriteByte(' ')
		case c == '=' && i+2 < len(payload) && isHex(payload[i+1]) && isHex(payload[i+2]):
			buf.WriteByte(unhex(payload[i+1])<<4 | unhex(payload[i+2]))
			i += 2
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
