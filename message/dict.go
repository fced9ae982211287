package message

import (
	"encoding/json"
	"fmt"

	"github.com/zostay/go-email-cleanse/message/header"
)

// Alternative is one rendition of the message body, such as the plain text or
// the HTML version.
type Alternative struct {
	ContentType string
	Body        string
}

// MarshalJSON renders the alternative as a two element array of content type
// and body.
func (a Alternative) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{a.ContentType, a.Body})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (a *Alternative) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("message part must be a [content type, body] pair: %w", err)
	}

	a.ContentType, a.Body = pair[0], pair[1]
	return nil
}

// AttachmentDict is the plain form of an Attachment. Content is encoded as
// base64 by encoding/json.
type AttachmentDict struct {
	Headers []header.Pair `json:"headers"`
	Content []byte        `json:"content"`
}

// Dict is the plain form of a UnicodeMessage.
type Dict struct {
	Headers      []header.Pair    `json:"headers"`
	MessageParts []Alternative    `json:"message_parts"`
	Attachments  []AttachmentDict `json:"attachments"`
}
