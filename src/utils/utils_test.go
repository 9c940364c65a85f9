package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyShape(t *testing.T) {
	key := ObjectKey("user-123", "Holiday Photo.PNG")

	parts := strings.SplitN(key, "/", 2)
	assert.Equal(t, "user-123", parts[0])
	assert.True(t, strings.HasSuffix(key, ".png"), "extension should be lowercased: %s", key)
	assert.Contains(t, parts[1], "-")
}

func TestObjectKeysDoNotCollide(t *testing.T) {
	a := ObjectKey("u", "a.jpg")
	b := ObjectKey("u", "a.jpg")
	assert.NotEqual(t, a, b)
}

func TestMediaTypeFor(t *testing.T) {
	assert.Equal(t, "image", MediaTypeFor("image/png"))
	assert.Equal(t, "video", MediaTypeFor("video/mp4"))
	assert.Equal(t, "file", MediaTypeFor("application/pdf"))
	assert.Equal(t, "file", MediaTypeFor("text/plain; charset=utf-8"))
}
