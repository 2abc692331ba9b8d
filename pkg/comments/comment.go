package comments

import (
	"errors"

	"igcomments/pkg/instagram"
)

// DefaultLimit is the number of media items collected when no limit is given
const DefaultLimit = instagram.DefaultMediaLimit

var (
	// ErrNoBusinessAccount is returned when a page has no linked Instagram business account
	ErrNoBusinessAccount = errors.New("no instagram business account linked to page")

	// ErrInvalidInput is returned for empty identifiers or credentials
	ErrInvalidInput = errors.New("invalid input")
)

// Comment is a comment enriched with the media item it was fetched under
type Comment struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	Text      *string `json:"text"`
	Timestamp *string `json:"timestamp"`
	MediaID   string  `json:"media_id"`
}

// sortKey is the timestamp, or "" when the comment has none
func (c Comment) sortKey() string {
	if c.Timestamp == nil {
		return ""
	}
	return *c.Timestamp
}

func fromCommentData(data instagram.CommentData, mediaID string) Comment {
	return Comment{
		ID:        data.ID,
		Username:  data.Username,
		Text:      data.Text,
		Timestamp: data.Timestamp,
		MediaID:   mediaID,
	}
}
