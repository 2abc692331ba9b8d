// Package instagram is a small client for the Facebook Graph API endpoints
// that expose a page's Instagram business account, its media and the
// comments on each media item.
//
// Every call is a single GET issued synchronously; there is no retry and
// no pagination. Non-2xx responses and transport failures come back as
// *errors.Error values that match errors.ErrRemoteCall.
//
//	client := instagram.NewClient(0, log)
//	page, err := client.GetPage(ctx, "1234", token)
//	if err != nil {
//	    return err
//	}
//	if page.InstagramBusinessAccount != nil {
//	    media, err := client.ListMedia(ctx, page.InstagramBusinessAccount.ID, token, 25)
//	    // ...
//	}
package instagram
