package instagram

// Page is the subset of a Facebook Page node requested by the resolver
type Page struct {
	ID                       string      `json:"id"`
	InstagramBusinessAccount *AccountRef `json:"instagram_business_account"`
}

// AccountRef references the Instagram business account linked to a page
type AccountRef struct {
	ID string `json:"id"`
}

// MediaItem is a published post of a business account
type MediaItem struct {
	ID        string  `json:"id"`
	Caption   *string `json:"caption,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// CommentData is a comment as returned by GET /{media-id}/comments.
// Absent fields stay nil.
type CommentData struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	Text      *string `json:"text"`
	Timestamp *string `json:"timestamp"`
}

// MediaList is the edge response of GET /{ig-user-id}/media
type MediaList struct {
	Data []MediaItem `json:"data"`
}

// CommentList is the edge response of GET /{media-id}/comments
type CommentList struct {
	Data []CommentData `json:"data"`
}

// GraphError is the error object the Graph API puts in non-2xx bodies
type GraphError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	FBTraceID    string `json:"fbtrace_id"`
}

// ErrorResponse wraps a GraphError
type ErrorResponse struct {
	Error *GraphError `json:"error"`
}
