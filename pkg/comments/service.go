package comments

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"igcomments/pkg/logger"
)

// Service resolves business accounts and collects their comments
type Service struct {
	client GraphClient
	logger logger.Logger
}

// New creates a Service
func New(client GraphClient, log logger.Logger) *Service {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Service{
		client: client,
		logger: log,
	}
}

// ResolveAccount returns the Instagram business account linked to pageID.
// ok is false when the page has no linked account; that is not an error.
func (s *Service) ResolveAccount(ctx context.Context, pageID, accessToken string) (accountID string, ok bool, err error) {
	if pageID == "" {
		return "", false, fmt.Errorf("%w: page ID is required", ErrInvalidInput)
	}
	if accessToken == "" {
		return "", false, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}

	log := s.logger.WithField("page_id", pageID)
	log.Debug("Resolving business account")

	page, err := s.client.GetPage(ctx, pageID, accessToken)
	if err != nil {
		return "", false, fmt.Errorf("resolving business account for page %s: %w", pageID, err)
	}

	if page.InstagramBusinessAccount == nil || page.InstagramBusinessAccount.ID == "" {
		log.Info("Page has no linked business account")
		return "", false, nil
	}

	log.WithField("account_id", page.InstagramBusinessAccount.ID).Debug("Resolved business account")
	return page.InstagramBusinessAccount.ID, true, nil
}

// Collect lists up to limit recent media items of accountID and gathers the
// comments of each one, newest first. A failed media listing aborts; a failed
// comment listing only skips that media item.
func (s *Service) Collect(ctx context.Context, accountID, accessToken string, limit int) ([]Comment, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", ErrInvalidInput)
	}
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	log := s.logger.WithField("account_id", accountID)

	media, err := s.client.ListMedia(ctx, accountID, accessToken, limit)
	if err != nil {
		return nil, fmt.Errorf("listing media for account %s: %w", accountID, err)
	}
	log.WithField("media", len(media)).Debug("Listed recent media")

	var (
		result  []Comment
		skipped int
	)
	for _, item := range media {
		data, err := s.client.ListComments(ctx, item.ID, accessToken)
		if err != nil {
			skipped++
			log.WithError(err).WithField("media_id", item.ID).Debug("Skipping media item, comment listing failed")
			continue
		}

		for _, d := range data {
			result = append(result, fromCommentData(d, item.ID))
		}
	}

	SortNewestFirst(result)

	logger.LogCollectSummary(log, accountID, len(media), skipped, len(result))
	return result, nil
}

// Fetch runs the whole pipeline: resolve the page, then collect comments.
// It returns ErrNoBusinessAccount without collecting when the page is unlinked.
func (s *Service) Fetch(ctx context.Context, pageID, accessToken string, limit int) ([]Comment, error) {
	accountID, ok, err := s.ResolveAccount(ctx, pageID, accessToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoBusinessAccount
	}

	return s.Collect(ctx, accountID, accessToken, limit)
}

// SortNewestFirst stable-sorts comments by timestamp descending. A missing
// timestamp compares as "" and so ends up after every timestamped comment.
func SortNewestFirst(comments []Comment) {
	slices.SortStableFunc(comments, func(a, b Comment) int {
		return strings.Compare(b.sortKey(), a.sortKey())
	})
}
