package entity

import "time"

// Creator is a tracked upstream account, keyed by its case-sensitive
// username. FetchedAt is the UTC time of the most recent ingestion
// attempt, whether or not it returned any posts.
type Creator struct {
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	FetchedAt time.Time `json:"fetched_at"`
}
