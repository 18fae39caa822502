package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMIME_PNG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	assert.Equal(t, "image/png", DetectMIME(png))
}

func TestDetectMIME_JPEG(t *testing.T) {
	jpg := []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}
	assert.Equal(t, "image/jpeg", DetectMIME(jpg))
}

func TestDetectMIME_Unknown(t *testing.T) {
	assert.Equal(t, "text/plain; charset=utf-8", DetectMIME([]byte("not an image")))
}
