package video

import "time"

// Video is an embedded YouTube video
type Video struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	VideoURL    string    `db:"video_url" json:"videoUrl"`
	VideoID     *string   `db:"video_id" json:"videoId"`
	Thumbnail   string    `db:"thumbnail" json:"thumbnail"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	Order       int       `db:"sort_order" json:"order"`
}

func (v Video) RecordID() int64 { return v.ID }
func (v Video) SortOrder() int  { return v.Order }

// applyURL sets the URL and the fields derived from it
func (v *Video) applyURL(url string) {
	v.VideoURL = url
	if id, ok := ExtractYouTubeID(url); ok {
		v.VideoID = &id
		v.Thumbnail = ThumbnailURL(id)
		return
	}
	v.VideoID = nil
	v.Thumbnail = ""
}
