package content

import (
	"context"
	"time"

	"github.com/hinke/navdeck/internal/panel"
)

// Delayed serves a Provider after a fixed latency. It turns any synchronous
// source into an asynchronous one, which is how the superseded-fetch path
// can be exercised without a server.
type Delayed struct {
	Provider panel.Provider
	Latency  time.Duration
}

var _ panel.Fetcher = Delayed{}

// Fetch implements panel.Fetcher. It returns ctx.Err() if ctx ends first.
func (d Delayed) Fetch(ctx context.Context, key string) (panel.Payload, error) {
	if d.Latency > 0 {
		t := time.NewTimer(d.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return panel.Payload{}, ctx.Err()
		case <-t.C:
		}
	}
	return d.Provider.Lookup(key), nil
}
