// Package header provides the ordered header field list shared by every part of
// a message, along with some typed accessors for reading common fields.
//
// Fields are stored exactly as given. Nothing here decodes, folds or encodes
// field bodies. Use the field package to decode RFC 2047 encoded-words before
// adding bodies to a header.
package header
