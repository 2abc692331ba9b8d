package comments

import (
	"context"

	"igcomments/pkg/instagram"
)

//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mocks/mock.go

// GraphClient defines the Graph API operations the service needs
type GraphClient interface {
	GetPage(ctx context.Context, pageID, accessToken string) (*instagram.Page, error)
	ListMedia(ctx context.Context, accountID, accessToken string, limit int) ([]instagram.MediaItem, error)
	ListComments(ctx context.Context, mediaID, accessToken string) ([]instagram.CommentData, error)
}
