package tikwm

import "tikify/internal/entity"

// Normalize maps one raw upstream item to a catalog post. Total: absent
// fields default to empty rather than failing, and the play count always
// starts at zero regardless of what upstream supplies.
func Normalize(username string, raw RawVideo) *entity.Post {
	images := raw.Images
	if images == nil {
		images = []string{}
	}

	return &entity.Post{
		ContentID: raw.VideoID,
		Username:  username,
		Caption:   raw.Title,
		Cover:     raw.Cover,
		PlayURL:   PlayURL(raw.VideoID),
		PlayCount: 0,
		Images:    images,
	}
}
