package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBase = "https://www.gravatar.com/avatar/"

// GravatarURL derives the avatar URL for an email address: 200px, rated pg, mystery-man fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBase + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
