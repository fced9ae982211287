package field_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-cleanse/message/header/field"
)

func TestNew(t *testing.T) {
	t.Parallel()

	f := field.New("Subject", "testing")

	assert.Equal(t, "Subject: testing", f.String())
	assert.Equal(t, []byte("Subject: testing"), f.Bytes())
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "testing", f.Body())

	f.SetName("X-Subject")
	assert.Equal(t, "X-Subject: testing", f.String())
	assert.Equal(t, []byte("X-Subject: testing"), f.Bytes())
	assert.Equal(t, "X-Subject", f.Name())
	assert.Equal(t, "testing", f.Body())

	f.SetBody("foo bar baz")
	assert.Equal(t, "X-Subject: foo bar baz", f.String())
	assert.Equal(t, "X-Subject", f.Name())
	assert.Equal(t, "foo bar baz", f.Body())

	// no folding or encoding on output
	f.SetBody("Igor Šerko")
	assert.Equal(t, "X-Subject: Igor Šerko", f.String())
}

func TestField_Clone(t *testing.T) {
	t.Parallel()

	f := field.New("To", "bob@example.com")
	c := f.Clone()
	assert.Equal(t, f, c)

	c.SetBody("jim@example.com")
	assert.Equal(t, "bob@example.com", f.Body())
}

func TestField_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal([]*field.Field{
		field.New("To", "bob@x.com"),
		field.New("Subject", "hi"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[["To","bob@x.com"],["Subject","hi"]]`, string(b))
}
