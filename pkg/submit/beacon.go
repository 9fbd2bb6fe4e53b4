package submit

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

const beaconTimeout = 3 * time.Second

// Notify fires an analytics beacon for an arbitrary UI event (for example a
// button click that never reaches Submit). Responses and failures are ignored.
func (g *Gateway) Notify(ctx context.Context, event string) {
	g.fireBeacon(ctx, event)
}

// fireBeacon issues GET <beacon>?type=<event> in the background. The request
// is detached from the caller's cancellation so an immediate view transition
// cannot abort it, but it still times out on its own.
func (g *Gateway) fireBeacon(ctx context.Context, event string) {
	if g.beaconURL == "" || event == "" {
		return
	}

	target, err := url.Parse(g.beaconURL)
	if err != nil {
		return
	}
	q := target.Query()
	q.Set("type", event)
	target.RawQuery = q.Encode()

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), beaconTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			return
		}
		resp, err := g.client.Do(req)
		if err != nil {
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
}
