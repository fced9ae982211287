package field

import (
	"encoding/json"
	"fmt"
)

// Field is a single header field: a name paired with an already decoded body.
// Fields are stored and rendered exactly as given. No folding or encoding is
// applied on output.
type Field struct {
	name string
	body string
}

// New constructs a new header field.
func New(name, body string) *Field {
	return &Field{name, body}
}

// Clone returns a copy of the field.
func (f *Field) Clone() *Field {
	return &Field{f.name, f.body}
}

// Name returns the name of the header field.
func (f *Field) Name() string {
	return f.name
}

// SetName updates the name of the header field.
func (f *Field) SetName(name string) {
	f.name = name
}

// Body returns the value of the header field as a string.
func (f *Field) Body() string {
	return f.body
}

// SetBody updates the body of the header field.
func (f *Field) SetBody(body string) {
	f.body = body
}

// String returns the complete header field as a string.
func (f *Field) String() string {
	return fmt.Sprintf("%s: %s", f.name, f.body)
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}

// MarshalJSON renders the field as a two element array of name and body.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{f.name, f.body})
}
