package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ItemHash derives the content identity of a stored item from its
// lowercased title and link. Re-inserting an item with the same hash is a
// no-op, which makes ingestion idempotent under retries and overlapping
// fetch windows.
func ItemHash(title, link string) string {
	base := strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(link))
	sum := sha256.Sum256([]byte(base))

	return hex.EncodeToString(sum[:])
}
