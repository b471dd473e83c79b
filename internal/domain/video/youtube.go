package video

import "regexp"

// youTubeIDLength is the length of every real YouTube video id
const youTubeIDLength = 11

// Matches youtu.be/<id>, /v/<id>, /u/<user>/<id>, /embed/<id>, watch?v=<id>
// and &v=<id>; the id runs until #, & or ?.
var youTubePattern = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w+/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractYouTubeID returns the video id embedded in url
func ExtractYouTubeID(url string) (string, bool) {
	m := youTubePattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != youTubeIDLength {
		return "", false
	}
	return m[2], true
}

// ThumbnailURL returns the full-size thumbnail for a video id
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
