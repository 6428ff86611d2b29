package s3impl

import "strings"

// prefix turns a folder path into an object key prefix: no leading slash, one trailing slash.
func prefix(folder string) string {
	p := strings.Trim(folder, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func baseName(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
