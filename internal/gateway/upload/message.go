package upload

// JobMessage is the unit of work handed to the conversion worker over the
// "video" queue. MP3FID stays null here; the worker fills it in when it
// publishes the completion event.
type JobMessage struct {
	VideoFID string  `json:"video_fid"`
	MP3FID   *string `json:"mp3_fid"`
	Username string  `json:"username"`
}
