package entity

import "time"

// ResolvedLink is the result of resolving an externally supplied share URL.
type ResolvedLink struct {
	ContentID string   `json:"content_id"`
	PlayURL   string   `json:"play_url"`
	HDPlayURL string   `json:"hd_play_url"`
	Images    []string `json:"images,omitempty"`
}

// SavedLink is a creator-agnostic pin of one resolved content ID.
// Unique by ContentID; listed most recently added first.
type SavedLink struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	PlayURL   string    `json:"play_url"`
	HDPlayURL string    `json:"hd_play_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatorLink is a curated entry produced by the batch ingestion path,
// keyed by the (creator, content ID) pair. The batch path only ever
// appends; entries from earlier runs are never replaced or truncated.
type CreatorLink struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	ContentID string    `json:"content_id"`
	PlayURL   string    `json:"play_url"`
	HDPlayURL string    `json:"hd_play_url"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
