package mapi

import (
	"context"
	"time"

	"emcmap/shared"
	"emcmap/utils/requests"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Anything able to produce the raw bodies of both feeds.
type Fetcher interface {
	FetchMarkers(ctx context.Context) ([]byte, error)
	FetchPlayers(ctx context.Context) ([]byte, error)
}

// The raw bodies of both feeds taken during a single fetch.
type Payloads struct {
	Markers   []byte    `json:"markers"`
	Players   []byte    `json:"players"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type FetcherOptions struct {
	MarkersURL string
	PlayersURL string
	Timeout    time.Duration
	ReqPerMin  int // 0 disables rate limiting
}

func DefaultFetcherOptions() FetcherOptions {
	return FetcherOptions{
		MarkersURL: shared.MARKERS_URL,
		PlayersURL: shared.PLAYERS_URL,
		Timeout:    requests.DEFAULT_TIMEOUT,
	}
}

// Fetches both feeds over HTTP. Safe for concurrent use.
type HTTPFetcher struct {
	markersURL string
	playersURL string
	client     *requests.Client
}

func NewHTTPFetcher(opts FetcherOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = requests.DEFAULT_TIMEOUT
	}

	return &HTTPFetcher{
		markersURL: opts.MarkersURL,
		playersURL: opts.PlayersURL,
		client:     requests.NewClient(opts.Timeout, opts.ReqPerMin),
	}
}

func (f *HTTPFetcher) URLs() (markers, players string) {
	return f.markersURL, f.playersURL
}

func (f *HTTPFetcher) FetchMarkers(ctx context.Context) ([]byte, error) {
	return f.fetch(ctx, f.markersURL)
}

func (f *HTTPFetcher) FetchPlayers(ctx context.Context) ([]byte, error) {
	return f.fetch(ctx, f.playersURL)
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, &shared.TransportError{Source: url, Err: err}
	}

	return body, nil
}

// Fetches both feeds concurrently. If either fails, the other is cancelled and
// the first error is returned. There are no partial results.
func FetchAll(ctx context.Context, f Fetcher) (Payloads, error) {
	var p Payloads
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p.Markers, err = f.FetchMarkers(gctx)
		return err
	})
	g.Go(func() (err error) {
		p.Players, err = f.FetchPlayers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Payloads{}, err
	}

	p.FetchedAt = time.Now()
	log.WithField("took", time.Since(start)).Debug("fetched marker and player feeds")

	return p, nil
}
