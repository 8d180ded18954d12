package tikwm

// The playback URL templates are a CDN contract: fixed base, content ID,
// fixed extension, differing only in the play/hdplay path segment.
const mediaBase = "https://www.tikwm.com/video/media"

func PlayURL(contentID string) string {
	return mediaBase + "/play/" + contentID + ".mp4"
}

func HDPlayURL(contentID string) string {
	return mediaBase + "/hdplay/" + contentID + ".mp4"
}
