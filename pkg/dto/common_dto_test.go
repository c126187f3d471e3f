package dto

import (
	"mime/multipart"
	"testing"

	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestOpenAvatarRejectsLargeFiles(t *testing.T) {
	_, _, err := OpenAvatar(&multipart.FileHeader{Filename: "me.png", Size: MaxAvatarBytes + 1})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestOpenAvatarRejectsUnknownExtension(t *testing.T) {
	_, _, err := OpenAvatar(&multipart.FileHeader{Filename: "me.exe", Size: 10})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
