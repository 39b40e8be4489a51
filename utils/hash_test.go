package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLHash(t *testing.T) {
	// sha256 of the exact URL string, hex encoded
	assert.Equal(t,
		"b0a25d5aae1d44901944ead9a24fa6f846e79551966faf5df1619db37cc89e10",
		URLHash("http://files/a.pdf"))
}

func TestURLHashDeterministic(t *testing.T) {
	a := URLHash("http://example.com/doc.pdf")
	b := URLHash("http://example.com/doc.pdf")
	c := URLHash("http://example.com/other.pdf")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
