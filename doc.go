// Package cleanse turns the email found in the wild into clean unicode.
//
// Mail headers arrive full of RFC 2047 encoded-words, often generated by
// software that gets them a little wrong: adjacent words with no space between
// them, charsets nobody has heard of, bytes that are not valid in the charset
// they claim. The message/header/field package decodes such header bodies
// without giving up, falling back on charset detection and, as a last resort,
// replacement characters.
//
// Decoded messages are held in a message.UnicodeMessage, which keeps an ordered
// header, the text alternatives of the body and a queue of attachments. The
// message/walk package builds these from RFC 5322 messages and mbox files.
//
// By default only us-ascii, iso-8859-1 and utf-8 can be decoded and only valid
// utf-8 is detected. Import the encoding package for side effects to decode
// every charset known to golang.org/x/text and to detect charsets
// statistically:
//
//	import _ "github.com/zostay/go-email-cleanse/message/header/encoding"
package cleanse
