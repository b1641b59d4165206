package util

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// GenerateUniqueFilename 生成对象路径安全的唯一文件名。
// 原始名中路径分隔符、空白等字符会被替换为下划线，
// 避免在 tuits/<id>/ 前缀下意外产生子层级；扩展名统一小写。
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := strings.TrimSuffix(filepath.Base(originalFilename), ext)
	name = sanitizeObjectName(name)
	if name == "" {
		name = "image"
	}

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return name + "_" + timestamp + strings.ToLower(ext)
}

func sanitizeObjectName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
