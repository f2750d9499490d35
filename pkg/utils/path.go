package utils

import (
	"path/filepath"
	"strings"
)

// IsImage reports whether path has one of the photo extensions the
// analyzer accepts.
func IsImage(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	switch extension {
	case ".png":
		return true
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func NotImage(path string) bool {
	return !IsImage(path)
}
