package walk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/emersion/go-mbox"
	gomessage "github.com/emersion/go-message"

	"github.com/zostay/go-email-cleanse/message"
	"github.com/zostay/go-email-cleanse/message/header/field"
)

func init() {
	if gomessage.CharsetReader == nil {
		// look up field.CharsetDecoder on each call so the full decoder is
		// used when the encoding package is imported
		gomessage.CharsetReader = func(charset string, r io.Reader) (io.Reader, error) {
			return field.CharsetDecoderToCharsetReader(field.CharsetDecoder)(charset, r)
		}
	}
}

type parser struct {
	logger            *slog.Logger
	dec               *field.WordDecoder
	attachmentHeaders []string
}

func newParser(opts []ParseOption) *parser {
	pr := &parser{
		logger:            slog.Default(),
		dec:               &field.WordDecoder{},
		attachmentHeaders: DefaultAttachmentHeaders,
	}

	for _, opt := range opts {
		opt(pr)
	}

	return pr
}

// Parse reads a single RFC 5322 message from r and returns it as a
// message.UnicodeMessage.
//
// The header fields of the top-level entity are decoded with a
// field.WordDecoder and added in order. Every leaf of the MIME tree is then
// visited depth first. Text parts not marked as attachments become message
// parts, keyed by their media type. All other leaves become attachments, in the
// order they were found, carrying the header fields named by
// DefaultAttachmentHeaders (or WithAttachmentHeaders) and the content with any
// transfer encoding removed.
//
// Parse recovers from unknown charsets and transfer encodings the same way the
// header decoder recovers from bad encoded-words: it keeps going and logs a
// warning. Only errors reading r are returned.
func Parse(r io.Reader, opts ...ParseOption) (*message.UnicodeMessage, error) {
	return newParser(opts).parse(r)
}

func (pr *parser) parse(r io.Reader) (*message.UnicodeMessage, error) {
	e, rootErr := gomessage.Read(r)
	if rootErr != nil && !recoverable(rootErr) {
		return nil, fmt.Errorf("unable to read message: %w", rootErr)
	}

	msg := &message.UnicodeMessage{}
	pr.copyHeader(&msg.Base, e.Header, nil)

	err := e.Walk(func(path []int, part *gomessage.Entity, err error) error {
		if err != nil && !recoverable(err) {
			return err
		}

		// the root is reported by Read rather than Walk
		if part == e && err == nil {
			err = rootErr
		}

		if part.MultipartReader() != nil {
			return nil
		}

		return pr.addPart(msg, path, part, err)
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read message parts: %w", err)
	}

	return msg, nil
}

// recoverable is true for errors after which go-message still provides the
// entity, just without charset or transfer decoding.
func recoverable(err error) bool {
	return gomessage.IsUnknownCharset(err) || gomessage.IsUnknownEncoding(err)
}

// headerBag is the part of header.Base the walker writes to.
type headerBag interface {
	Add(name, body string)
	SetAll(fs []*field.Field)
}

// copyHeader decodes the header fields of h into the bag. When only is not
// nil, only fields named in it are copied.
func (pr *parser) copyHeader(b headerBag, h gomessage.Header, only []string) {
	b.SetAll(nil)

	fs := h.Fields()
	for fs.Next() {
		name := fs.Key()
		if only != nil && !containsFold(only, name) {
			continue
		}

		body, err := pr.dec.DecodeHeader(unfold(fs.Value()))
		if err != nil {
			pr.logger.Warn("header field decoded with replacement characters",
				"field", name,
				"error", err)
		}

		b.Add(name, body)
	}
}

// unfold removes the line breaks of folded header fields, leaving the
// whitespace that followed them.
func unfold(v string) string {
	v = strings.ReplaceAll(v, "\r\n", "")
	return strings.ReplaceAll(v, "\n", "")
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// addPart turns a leaf entity into either a message part or an attachment.
// The readErr is the recoverable error go-message reported for the part, if
// any.
func (pr *parser) addPart(
	msg *message.UnicodeMessage,
	path []int,
	part *gomessage.Entity,
	readErr error,
) error {
	mt, params, err := part.Header.ContentType()
	if err != nil || mt == "" {
		mt = message.DefaultContentType
	}

	disp, _, _ := part.Header.ContentDisposition()

	content, err := io.ReadAll(part.Body)
	if err != nil {
		return fmt.Errorf("unable to read part %v: %w", path, err)
	}

	if readErr != nil {
		pr.logger.Warn("part kept without full decoding",
			"part", path,
			"content-type", mt,
			"error", readErr)
	}

	if !strings.HasPrefix(mt, "text/") || disp == "attachment" {
		a := &message.Attachment{}
		pr.copyHeader(&a.Base, part.Header, pr.attachmentHeaders)
		a.SetContent(content)
		msg.EnqueueAttachment(a)
		return nil
	}

	body, err := pr.decodeText(content, params["charset"], readErr)
	if err != nil {
		pr.logger.Warn("text part decoded with replacement characters",
			"part", path,
			"content-type", mt,
			"error", err)
	}

	msg.AddMessagePart(body, mt)
	return nil
}

// decodeText returns the text of a part. go-message has already converted the
// body to UTF-8 unless the charset is missing or unknown to it, or the body
// claims utf-8 or us-ascii, which go-message passes through unchecked. Any of
// those that is not valid utf-8 is decoded like a header segment.
func (pr *parser) decodeText(content []byte, charset string, readErr error) (string, error) {
	if utf8.Valid(content) && !gomessage.IsUnknownCharset(readErr) {
		return string(content), nil
	}

	return pr.dec.DecodeSegment(content, charset)
}

// ErrStop may be returned by a ParseMbox callback to stop reading early
// without error.
var ErrStop = errors.New("stop reading mbox")

// MessageFunc is called by ParseMbox for each message found. The index is
// the zero-based position of the message in the mbox.
type MessageFunc func(i int, msg *message.UnicodeMessage) error

// ParseMbox reads every message in the mbox r, parses each as Parse would and
// passes it to fn. A message that cannot be parsed is logged and skipped. If fn
// returns an error other than ErrStop, reading stops and that error is
// returned.
func ParseMbox(r io.Reader, fn MessageFunc, opts ...ParseOption) error {
	pr := newParser(opts)

	mr := mbox.NewReader(r)
	for i := 0; ; i++ {
		in, err := mr.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("unable to read mbox message %d: %w", i, err)
		}

		msg, err := pr.parse(in)
		if err != nil {
			pr.logger.Warn("skipping unreadable message",
				"index", i,
				"error", err)
			continue
		}

		err = fn(i, msg)
		if errors.Is(err, ErrStop) {
			return nil
		} else if err != nil {
			return err
		}
	}
}
