package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712345678/bloodconnect/avatars/abc.webp":             "bloodconnect/avatars/abc",
		"https://res.cloudinary.com/demo/image/upload/c_fill,w_256/v1712345678/bloodconnect/avatars/abc.webp": "bloodconnect/avatars/abc",
		"https://res.cloudinary.com/demo/image/upload/avatars/abc.png":                                         "avatars/abc",
		"https://example.com/not-cloudinary.png":                                                               "",
		"https://res.cloudinary.com/demo/image/upload/":                                                        "",
	}

	for in, want := range cases {
		assert.Equal(t, want, PublicIDFromURL(in), in)
	}
}
