// Package link implements the URL-shortening domain: creating short codes,
// resolving them to their original URLs, and tracking click counts.
package link

import (
	"time"
)

// Link is a shortened URL entry.
type Link struct {
	ID          string
	OriginalURL string
	ShortCode   string
	Clicks      int64
	CreatedAt   time.Time
}
