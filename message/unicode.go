package message

import (
	"errors"

	"github.com/gammazero/deque"

	"github.com/zostay/go-email-cleanse/message/header"
)

// DefaultContentType is the content type of a body alternative added without
// one.
const DefaultContentType = "text/plain"

// ErrEmptyQueue is returned by DequeueAttachment when there are no attachments
// left.
var ErrEmptyQueue = errors.New("attachment queue is empty")

// UnicodeMessage is an email message whose header fields and body text have
// been decoded into native unicode. It holds the header, an ordered list of
// body alternatives and a first-in, first-out queue of attachments.
//
// The zero value is an empty message ready for use. A UnicodeMessage is not
// safe for concurrent use.
type UnicodeMessage struct {
	header.Base

	alternatives []Alternative
	attachments  deque.Deque[*Attachment]
}

// AddMessagePart appends a body alternative. When contentType is empty,
// DefaultContentType is used. Alternatives are never merged, so adding two
// bodies with the same content type keeps both.
func (m *UnicodeMessage) AddMessagePart(body, contentType string) {
	if contentType == "" {
		contentType = DefaultContentType
	}

	m.alternatives = append(m.alternatives, Alternative{
		ContentType: contentType,
		Body:        body,
	})
}

// SetMessagePart replaces the body of the first alternative with the given
// content type in place. If there is none, the body is appended as with
// AddMessagePart.
func (m *UnicodeMessage) SetMessagePart(body, contentType string) {
	if contentType == "" {
		contentType = DefaultContentType
	}

	for i := range m.alternatives {
		if m.alternatives[i].ContentType == contentType {
			m.alternatives[i].Body = body
			return
		}
	}

	m.AddMessagePart(body, contentType)
}

// MessageParts returns a copy of the body alternatives in the order they were
// added.
func (m *UnicodeMessage) MessageParts() []Alternative {
	alts := make([]Alternative, len(m.alternatives))
	copy(alts, m.alternatives)
	return alts
}

// EnqueueAttachment adds the attachment to the end of the queue. The message
// takes ownership of it.
func (m *UnicodeMessage) EnqueueAttachment(a *Attachment) {
	m.attachments.PushBack(a)
}

// DequeueAttachment removes the oldest attachment from the queue and returns
// it. It returns ErrEmptyQueue when the queue is empty.
func (m *UnicodeMessage) DequeueAttachment() (*Attachment, error) {
	if m.attachments.Len() == 0 {
		return nil, ErrEmptyQueue
	}

	return m.attachments.PopFront(), nil
}

// AttachmentCount returns the number of attachments in the queue.
func (m *UnicodeMessage) AttachmentCount() int {
	return m.attachments.Len()
}

// Attachments returns the queued attachments, oldest first, without removing
// them.
func (m *UnicodeMessage) Attachments() []*Attachment {
	as := make([]*Attachment, m.attachments.Len())
	for i := range as {
		as[i] = m.attachments.At(i)
	}
	return as
}

// IsMultipart returns true if the message has two or more body alternatives or
// any attachments at all.
func (m *UnicodeMessage) IsMultipart() bool {
	return len(m.alternatives) > 1 || m.attachments.Len() > 0
}

// AsDict returns the message as a plain structure. Headers and alternatives are
// in the order they were added and attachments are in queue order. The queue is
// left as it was.
func (m *UnicodeMessage) AsDict() (Dict, error) {
	d := Dict{
		Headers:      m.Pairs(),
		MessageParts: m.MessageParts(),
		Attachments:  make([]AttachmentDict, 0, m.attachments.Len()),
	}

	for i := 0; i < m.attachments.Len(); i++ {
		ad, err := m.attachments.At(i).AsDict()
		if err != nil {
			return Dict{}, err
		}
		d.Attachments = append(d.Attachments, ad)
	}

	return d, nil
}
