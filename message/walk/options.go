package walk

import (
	"log/slog"

	"github.com/zostay/go-email-cleanse/message/header"
	"github.com/zostay/go-email-cleanse/message/header/field"
)

// DefaultAttachmentHeaders names the header fields copied from a MIME part onto
// the Attachment made from it.
var DefaultAttachmentHeaders = []string{
	header.ContentType,
	header.ContentDisposition,
	header.ContentID,
	header.ContentDescription,
}

// ParseOption refers to options that may be passed to Parse and ParseMbox.
type ParseOption func(pr *parser)

// WithLogger sets the logger that receives warnings about header fields and
// parts that could only be decoded partially. The default is slog.Default().
func WithLogger(logger *slog.Logger) ParseOption {
	return func(pr *parser) {
		pr.logger = logger
	}
}

// WithWordDecoder sets the decoder used for header field bodies and for text
// parts whose charset go-message could not handle. The default is a zero
// field.WordDecoder.
func WithWordDecoder(dec *field.WordDecoder) ParseOption {
	return func(pr *parser) {
		pr.dec = dec
	}
}

// WithAttachmentHeaders replaces DefaultAttachmentHeaders with the given list
// of field names. Names are matched without regard to case.
func WithAttachmentHeaders(names ...string) ParseOption {
	return func(pr *parser) {
		pr.attachmentHeaders = names
	}
}
