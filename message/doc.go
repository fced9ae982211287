// Package message models an email message after its header fields have been
// decoded: an ordered header, one or more body alternatives (such as a plain
// text and an HTML rendition of the same body) and a queue of attachments.
//
// Nothing here parses raw messages. The walk package fills a UnicodeMessage
// from an RFC 5322 message or mbox, but callers are free to build one
// themselves:
//
//	msg := &message.UnicodeMessage{}
//	msg.Add("Subject", "hi")
//	msg.AddMessagePart("hi", "")
//	msg.EnqueueAttachment(message.NewAttachment(data, nil))
//
// Each type can be converted into a plain structure suitable for handing to
// encoding/json with AsDict.
package message
