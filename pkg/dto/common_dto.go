package dto

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"anoa.com/bloodconnect/pkg/apperror"
)

// MaxAvatarBytes caps avatar uploads at 2 MiB.
const MaxAvatarBytes = 2 << 20

// AvatarFile is an uploaded avatar image.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

var allowedAvatarExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// OpenAvatar validates and opens a multipart avatar. The caller closes the
// returned file.
func OpenAvatar(fh *multipart.FileHeader) (*AvatarFile, multipart.File, error) {
	if fh.Size > MaxAvatarBytes {
		return nil, nil, fmt.Errorf("%w: avatar must be under 2MB", apperror.ErrInvalidInput)
	}
	if !allowedAvatarExt[strings.ToLower(filepath.Ext(fh.Filename))] {
		return nil, nil, fmt.Errorf("%w: avatar must be a jpg, png, webp or gif image", apperror.ErrInvalidInput)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read avatar", apperror.ErrBadRequest)
	}

	return &AvatarFile{Reader: file, FileName: fh.Filename}, file, nil
}
