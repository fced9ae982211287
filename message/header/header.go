package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned by header methods when the operation
	// being performed failed because the there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrBadDate is returned when a date field body matches no known format.
	ErrBadDate = errors.New("unparseable date")
)

// These are standard headers defined in RFC 5322 and RFC 2183.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	Comments                = "Comments"
	ContentDescription      = "Content-Description"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-Id"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-Reply-To"
	Keywords                = "Keywords"
	MessageID               = "Message-Id"
	References              = "References"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// UnixDateWithEarlyYear is a date layout seen in the wild that neither
// net/mail nor dateparse accepts.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// dateParsers are tried in order by ParseTime.
var dateParsers = []func(string) (time.Time, error){
	mail.ParseDate,
	func(s string) (time.Time, error) { return dateparse.ParseAny(s) },
	func(s string) (time.Time, error) { return time.Parse(UnixDateWithEarlyYear, s) },
}

// ParseTime parses a date field body. RFC 5322 dates are tried first, then the
// many formats known to dateparse.
func ParseTime(body string) (time.Time, error) {
	body = strings.TrimSpace(body)
	for _, parse := range dateParsers {
		if t, err := parse(body); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, body)
}

// GetTime gets the given date header field as a time.Time. It will attempt to
// parse the date in many formats, not just the format specified by RFC 5322
// (though, it will try that first).
//
// It will return an error if it is unable to parse the time value from the date
// header. It will return the zero value and ErrNoSuchField if the header does
// not exist. It will return the zero value and ErrManyFields if more than one
// field with the name is set on the header.
func (h *Base) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	return ParseTime(body)
}

// GetDate is the same as GetTime(Date).
func (h *Base) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// ParseAddressList parses an address field body. A strict RFC 5322 parse is
// tried first. When that fails, the body is split on commas and every piece
// that holds anything is turned into a mailbox without validation, so some
// result is returned for any input.
func ParseAddressList(body string) addr.AddressList {
	if al, err := addr.ParseEmailAddressList(body); err == nil {
		return al
	}

	pieces := strings.Split(body, ",")
	al := make(addr.AddressList, 0, len(pieces))
	for _, piece := range pieces {
		if mb := lenientMailbox(piece); mb != nil {
			al = append(al, mb)
		}
	}

	return al
}

// GetAddressList will return an addr.AddressList for the named field. This
// method works hard to avoid parse errors and tries to accept anything. As such
// a badly formatted address field might return a weird address value.
//
// It will return nil and ErrNoSuchField if the field is not set on the header.
// It will return ErrManyFields if the field is set more than once on the
// header.
func (h *Base) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	return ParseAddressList(body), nil
}

// GetAllAddressLists will return a slice of addr.AddressList for all headers
// with the given name.
//
// If the named field does not exist in the header, this will return nil with
// ErrNoSuchField.
func (h *Base) GetAllAddressLists(name string) ([]addr.AddressList, error) {
	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	als := make([]addr.AddressList, len(bs))
	for i, b := range bs {
		als[i] = ParseAddressList(b)
	}

	return als, nil
}

// GetKeywordsList will return a list of strings representing all the keywords
// set on the named header. There can be zero or more such headers. Each header
// is a comma-separated list of keywords. This collects those values from all
// the headers with the given name.
//
// This method will return nil with ErrNoSuchField if the named field does not
// exist.
func (h *Base) GetKeywordsList(name string) ([]string, error) {
	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	ks := make([]string, 0, len(bs)*2)
	for _, b := range bs {
		for _, k := range strings.Split(b, ",") {
			if k = strings.TrimSpace(k); k != "" {
				ks = append(ks, k)
			}
		}
	}

	return ks, nil
}

// lenientMailbox makes a mailbox of a single piece of a broken address list.
// The address is the text in angle brackets if there is any, or else the last
// word. What comes before it is the display name and parenthesized text is the
// comment. Groups are not recognized. It returns nil when no address is found.
func lenientMailbox(orig string) *addr.Mailbox {
	text, comment := splitComment(orig)

	var name, email string
	if lt := strings.LastIndexByte(text, '<'); lt >= 0 {
		name, email = text[:lt], text[lt+1:]
		if gt := strings.IndexByte(email, '>'); gt >= 0 {
			email = email[:gt]
		}
	} else if words := strings.Fields(text); len(words) > 0 {
		name = strings.Join(words[:len(words)-1], " ")
		email = words[len(words)-1]
	}

	name = strings.Trim(strings.Join(strings.Fields(name), " "), `"`)
	email = strings.TrimSpace(email)
	comment = strings.TrimSpace(comment)
	if email == "" {
		return nil
	}

	local, domain := email, ""
	if at := strings.LastIndexByte(email, '@'); at >= 0 {
		local, domain = email[:at], email[at+1:]
	}
	addrSpec := addr.NewAddrSpecParsed(local, domain, email)

	mb, err := addr.NewMailboxParsed(name, addrSpec, comment, orig)
	if err != nil {
		// unbalanced parentheses in the comment
		mb, _ = addr.NewMailboxParsed(name, addrSpec, "", orig)
	}

	return mb
}

// splitComment separates parenthesized comments from the rest of s. Nested
// parentheses stay in the comment and a stray ")" stays in the text.
func splitComment(s string) (text, comment string) {
	var t, c strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			if depth > 0 {
				c.WriteRune(r)
			}
			depth++
		case r == ')' && depth > 0:
			depth--
			if depth > 0 {
				c.WriteRune(r)
			}
		case depth > 0:
			c.WriteRune(r)
		default:
			t.WriteRune(r)
		}
	}

	return t.String(), c.String()
}
