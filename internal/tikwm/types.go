// Package tikwm is a client for the tikwm.com content API: the paginated
// per-creator post listing, the share-link resolver and the derived CDN
// playback URLs.
package tikwm

import "encoding/json"

// RawVideo is one unprocessed item from the upstream listing payload.
type RawVideo struct {
	VideoID string   `json:"video_id"`
	Title   string   `json:"title"`
	Cover   string   `json:"cover"`
	Images  []string `json:"images"`
}

// UserPostsPage is one page of a creator's post listing.
type UserPostsPage struct {
	Videos  []RawVideo
	HasMore bool
	// Cursor is the opaque token for the next page, taken verbatim from the
	// response rather than incremented locally.
	Cursor string
}

type userPostsResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Videos  []RawVideo  `json:"videos"`
		HasMore bool        `json:"has_more"`
		Cursor  json.Number `json:"cursor"`
	} `json:"data"`
}

type detailResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Images []string `json:"images"`
	} `json:"data"`
}
