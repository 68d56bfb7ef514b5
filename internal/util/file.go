package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateUniqueFilename 在原文件名后附加纳秒时间戳，避免同名覆盖
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	base := strings.TrimSuffix(filepath.Base(originalFilename), ext)
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)
}
