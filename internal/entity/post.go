package entity

// Post is one normalized catalog entry. ContentID is the opaque upstream
// identifier and is unique within a creator's catalog. PlayCount starts at
// zero and is only ever bumped by view/download events, never by ingestion.
type Post struct {
	ContentID string   `json:"content_id"`
	Username  string   `json:"username"`
	Caption   string   `json:"caption"`
	Cover     string   `json:"cover"`
	PlayURL   string   `json:"play_url"`
	PlayCount int      `json:"play_count"`
	Images    []string `json:"images,omitempty"`
}
