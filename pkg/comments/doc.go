// Package comments turns a Facebook page into a newest-first listing of the
// comments on its Instagram business account's recent media.
//
// The pipeline is strictly sequential:
//
//	svc := comments.New(client, log)
//	list, err := svc.Fetch(ctx, pageID, token, comments.DefaultLimit)
//	if errors.Is(err, comments.ErrNoBusinessAccount) {
//	    // page is not linked to an Instagram business account
//	}
//	p, _ := comments.NewPresenter(comments.FormatText)
//	p.Present(os.Stdout, list)
//
// Only the page lookup and the media listing are fatal. A media item whose
// comments cannot be listed contributes nothing and the run carries on.
package comments
