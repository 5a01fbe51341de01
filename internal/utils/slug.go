package utils

import (
	"encoding/hex"
	"strings"

	"github.com/gofrs/uuid"
)

// Slugify lowercases a title and reduces it to hyphen-separated ASCII
// words: "My Project!" -> "my-project". Non-alphanumeric runs collapse
// into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug appends a random 8-character hex token so that slugs derived
// from identical titles never collide: "my-project-64f1a9c3".
func UniqueSlug(title string) string {
	token := hex.EncodeToString(uuid.Must(uuid.NewV4()).Bytes()[:4])
	base := Slugify(title)
	if base == "" {
		return token
	}
	return base + "-" + token
}
