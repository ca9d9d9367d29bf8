package instagramimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
)

func (ig *IgImpl) Download(ctx context.Context, media domain.RemoteMedia) (io.ReadCloser, int64, error) {
	if media.URL == "" {
		return nil, 0, errors.Classify(fmt.Errorf("media %s has no url", media.RemoteID), errors.KindNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, media.URL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header = http.Header{
		"User-Agent": []string{userAgent},
		"Accept":     []string{"image/webp,video/mp4,*/*"},
		"Referer":    []string{"https://www.instagram.com/"},
	}

	resp, err := ig.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, errors.Classify(fmt.Errorf("error downloading media %s: %w", media.RemoteID, err), errors.KindTransient)
	}

	if err := statusError(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("media %s: %w", media.RemoteID, err)
	}

	return resp.Body, resp.ContentLength, nil
}

// statusError maps CDN responses. A forbidden response usually means the
// signed url expired; the item stays unrecorded so a later listing hands
// out a fresh url.
func statusError(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return errors.Classify(fmt.Errorf("received status code %d", code), errors.KindNotFound)
	case code == http.StatusForbidden, code >= 500, code == http.StatusRequestTimeout:
		return errors.Classify(fmt.Errorf("received status code %d", code), errors.KindTransient)
	case code == http.StatusTooManyRequests:
		return errors.Classify(fmt.Errorf("received status code %d", code), errors.KindRateLimited)
	case code == http.StatusUnauthorized:
		return errors.Classify(fmt.Errorf("received status code %d", code), errors.KindUnauthorized)
	default:
		return fmt.Errorf("received unexpected status code %d", code)
	}
}
