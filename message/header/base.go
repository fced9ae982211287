package header

import (
	"io"
	"strings"

	"github.com/zostay/go-email-cleanse/message/header/field"
)

// Pair is a header field in its serialized form: name first, then body.
type Pair [2]string

// Base is the ordered list of header fields held by every part of a message.
// The zero value is an unset header: no fields have ever been set on it. An
// unset header is distinguishable from one that is empty because all of its
// fields have been deleted. See IsSet.
//
// Fields are kept in insertion order. Only Delete and Replace change the
// relative order of existing fields.
type Base struct {
	lbr    Break
	fields []*field.Field
}

// initBase initializes the fields lazily, moving the header from unset to set.
func (h *Base) initBase() {
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
}

// IsSet returns true once any fields have been set on the header, even if all
// of them have been deleted since.
func (h *Base) IsSet() bool {
	return h.fields != nil
}

// Break returns the line break used to terminate each field when rendering the
// header as text. A header with no break set, or an invalid one, uses LF.
func (h *Base) Break() Break {
	if !h.lbr.Valid() {
		return LF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// SetAll replaces every field in the header with copies of the given fields.
// Changes the caller makes to fs or its fields afterward do not affect the
// header. Passing an empty slice leaves the header set and empty.
func (h *Base) SetAll(fs []*field.Field) {
	h.fields = make([]*field.Field, 0, len(fs))
	for _, f := range fs {
		if f == nil {
			continue
		}
		h.fields = append(h.fields, f.Clone())
	}
}

// Add appends a new field to the end of the header. No check is made for
// existing fields with the same name.
func (h *Base) Add(name, body string) {
	h.initBase()
	h.fields = append(h.fields, field.New(name, body))
}

// InsertBeforeField will insert the given name and body values into the header
// at the given index.
func (h *Base) InsertBeforeField(
	n int,
	name,
	body string,
) {
	h.initBase()

	// cap the range of n to 0..len(h.fields)
	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	// make room for the new field
	h.fields = append(h.fields, nil)

	// move existing fields out of the way
	copy(h.fields[n+1:], h.fields[n:])

	h.fields[n] = field.New(name, body)
}

// Delete removes every field whose name is exactly name. The match is case
// sensitive. Deleting from an unset header leaves it unset.
func (h *Base) Delete(name string) {
	if h.fields == nil {
		return
	}

	keep := h.fields[:0]
	for _, f := range h.fields {
		if f.Name() != name {
			keep = append(keep, f)
		}
	}

	// release the dropped fields
	for i := len(keep); i < len(h.fields); i++ {
		h.fields[i] = nil
	}

	h.fields = keep
}

// Replace removes every field named name and then appends a single new field
// with the given body, which leaves it at the end of the header.
func (h *Base) Replace(name, body string) {
	h.Delete(name)
	h.Add(name, body)
}

// Len returns the number of fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil if n is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetIndexesNamed returns the indexes of fields with the given name. Unlike
// Delete, names are matched without regard to case.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 10)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns all the fields in the header. The slice is a copy, but
// the fields are not.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Get retrieves the body of the named field.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField. If there are multiple fields with the given name, it
// will return the first body found and ErrManyFields.
func (h *Base) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.fields[ixs[0]].Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll returns the bodies of all the fields with the given name in order. It
// returns ErrNoSuchField if there are none.
func (h *Base) GetAll(name string) ([]string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(ixs))
	for i, ix := range ixs {
		bs[i] = h.fields[ix].Body()
	}

	return bs, nil
}

// Pairs returns the fields as name/body pairs in order. An unset header returns
// an empty, non-nil slice.
func (h *Base) Pairs() []Pair {
	ps := make([]Pair, len(h.fields))
	for i, f := range h.fields {
		ps[i] = Pair{f.Name(), f.Body()}
	}
	return ps
}

// Clone returns a deep copy of the header, preserving whether it is set.
func (h *Base) Clone() *Base {
	c := &Base{lbr: h.lbr}
	if h.fields != nil {
		c.SetAll(h.fields)
	}
	return c
}

// Text renders the header with each field as "name: body" followed by the line
// break. Bodies are neither folded nor encoded and no blank line is added after
// the last field.
func (h *Base) Text() string {
	var buf strings.Builder
	_, _ = h.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the header as described for Text to the given writer.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	lbr := h.Break().String()

	total := int64(0)
	for _, f := range h.fields {
		n, err := io.WriteString(w, f.String()+lbr)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
