package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-email-cleanse/message/header"
)

func TestBreak(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n", header.LF.String())
	assert.Equal(t, "\r\n", header.CRLF.String())
	assert.Equal(t, "\r", header.CR.String())

	assert.True(t, header.CRLF.Valid())
	assert.False(t, header.Break("").Valid())
	assert.False(t, header.Break("\n\r").Valid())
}
