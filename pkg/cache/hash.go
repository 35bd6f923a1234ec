package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Hash returns the hex SHA-256 of data. File cache entries live under the
// first two characters of the hash of their key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// assetKey builds "<kind>:<hash>" from the parts identifying one asset.
// Parts are NUL separated so ("a", "bc") and ("ab", "c") differ.
func assetKey(kind string, parts ...string) string {
	return kind + ":" + Hash([]byte(strings.Join(parts, "\x00")))
}

// qrParts identifies a QR image by provider, encoded URL and pixel edge.
func qrParts(provider, url string, edge int) []string {
	return []string{provider, url, strconv.Itoa(edge)}
}
