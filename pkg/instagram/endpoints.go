package instagram

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the Graph API host
	BaseURL = "https://graph.facebook.com"

	// APIVersion is the Graph API version requested by default
	APIVersion = "v17.0"

	// PageFields asks a page for its linked business account
	PageFields = "instagram_business_account"

	// MediaFields are requested for every media item
	MediaFields = "id,caption,timestamp"

	// CommentFields are requested for every comment
	CommentFields = "id,username,text,timestamp"

	// DefaultMediaLimit is the number of media items requested when no limit is given
	DefaultMediaLimit = 25

	redacted = "REDACTED"
)

// BuildURL joins base URL, version and node path and appends the query
func BuildURL(baseURL, apiVersion string, params url.Values, segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}

	u := fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), apiVersion, strings.Join(escaped, "/"))
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// PageParams builds the query for GET /{page-id}
func PageParams(accessToken string) url.Values {
	params := url.Values{}
	params.Set("fields", PageFields)
	params.Set("access_token", accessToken)
	return params
}

// MediaParams builds the query for GET /{ig-user-id}/media
func MediaParams(accessToken string, limit int) url.Values {
	if limit <= 0 {
		limit = DefaultMediaLimit
	}

	params := url.Values{}
	params.Set("fields", MediaFields)
	params.Set("access_token", accessToken)
	params.Set("limit", fmt.Sprintf("%d", limit))
	return params
}

// CommentParams builds the query for GET /{media-id}/comments
func CommentParams(accessToken string) url.Values {
	params := url.Values{}
	params.Set("fields", CommentFields)
	params.Set("access_token", accessToken)
	return params
}

// RedactURL hides the access token so URLs can be logged
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	if q.Has("access_token") {
		q.Set("access_token", redacted)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
