package applications

import (
	"encoding/hex"
	"strings"
)

const safeNameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._-"

// ObjectName maps a username to the name of its records document.
// Usernames made only of [A-Za-z0-9._-] are used as is; anything else is
// hex-encoded behind a "~", which never occurs in a plain name.
func ObjectName(username string) string {
	if isSafeName(username) {
		return "jobs_" + username + ".json"
	}
	return "jobs_~" + hex.EncodeToString([]byte(username)) + ".json"
}

func isSafeName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(safeNameChars, r) {
			return false
		}
	}
	return true
}
