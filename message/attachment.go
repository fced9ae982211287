package message

import (
	"bytes"
	"fmt"
	"io"

	"github.com/zostay/go-email-cleanse/message/header"
	"github.com/zostay/go-email-cleanse/message/header/field"
)

// Attachment is a message part carrying opaque content. It has its own header,
// usually holding little more than the Content-Type and Content-Disposition.
//
// The zero value is an attachment with an unset header and no content.
type Attachment struct {
	header.Base

	content io.Reader
}

// NewAttachment returns an attachment holding a copy of content with a header
// set to copies of the given fields.
func NewAttachment(content []byte, fs []*field.Field) *Attachment {
	a := &Attachment{}
	a.SetContent(content)
	if fs != nil {
		a.SetAll(fs)
	}
	return a
}

// SetContent replaces the content with a copy of b.
func (a *Attachment) SetContent(b []byte) {
	a.content = bytes.NewReader(bytes.Clone(b))
}

// SetContentString replaces the content with the bytes of s.
func (a *Attachment) SetContentString(s string) {
	a.content = bytes.NewReader([]byte(s))
}

// SetContentReader replaces the content with r, which is used as-is. The
// attachment takes over the read position of r. If r is also an io.Seeker, it
// will be rewound every time the content is serialized. Otherwise, r is read
// into memory the first time the content is serialized and never touched
// again.
func (a *Attachment) SetContentReader(r io.Reader) {
	a.content = r
}

// Content returns the reader holding the content or nil if no content has been
// set. Reading from it moves the read position shared with AsDict, which
// rewinds before reading.
func (a *Attachment) Content() io.Reader {
	return a.content
}

// readContent reads the whole content from the start.
func (a *Attachment) readContent() ([]byte, error) {
	if a.content == nil {
		return []byte{}, nil
	}

	s, isSeeker := a.content.(io.Seeker)
	if !isSeeker {
		// slurp it once, then it can be rewound like any other
		b, err := io.ReadAll(a.content)
		if err != nil {
			return nil, fmt.Errorf("unable to read attachment content: %w", err)
		}
		a.content = bytes.NewReader(b)
		return bytes.Clone(b), nil
	}

	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("unable to rewind attachment content: %w", err)
	}

	b, err := io.ReadAll(a.content)
	if err != nil {
		return nil, fmt.Errorf("unable to read attachment content: %w", err)
	}

	return b, nil
}

// AsDict returns the attachment as a plain structure. The full content is read
// from the start every time, so calling this repeatedly returns the same
// content. An attachment without headers or content returns empty values
// rather than nil.
func (a *Attachment) AsDict() (AttachmentDict, error) {
	b, err := a.readContent()
	if err != nil {
		return AttachmentDict{}, err
	}

	return AttachmentDict{
		Headers: a.Pairs(),
		Content: b,
	}, nil
}
