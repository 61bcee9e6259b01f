package util

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// GenerateObjectKey 生成唯一的对象键，如 photos/2f1c...e9.png
func GenerateObjectKey(prefix, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(prefix, uuid.NewString()+strings.ToLower(ext))
}
