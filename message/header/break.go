package header

// Break is the line terminator written after each field by Base.Text and
// Base.WriteTo.
type Break string

const (
	LF   Break = "\n"   // default for rendered headers
	CRLF Break = "\r\n" // wire format
	CR   Break = "\r"
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Valid is true for the breaks defined in this package.
func (b Break) Valid() bool {
	return b == LF || b == CRLF || b == CR
}
