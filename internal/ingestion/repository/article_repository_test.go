package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashArticle(t *testing.T) {
	hash := HashArticle("https://example.com/picks", "<html>body</html>")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashArticle("https://example.com/picks", "<html>body</html>"),
		"same url and body must hash identically")
	assert.NotEqual(t, hash, HashArticle("https://example.com/other", "<html>body</html>"),
		"a different url must change the hash")
	assert.NotEqual(t, hash, HashArticle("https://example.com/picks", "<html>changed</html>"),
		"a different body must change the hash")
}
