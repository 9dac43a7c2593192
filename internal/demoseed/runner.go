// Package demoseed binds demo games to content through the HTTP API and
// verifies that every bound score can be read back.
package demoseed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/livescores/internal/adapters/provider/demo"
	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/pkg/logger"
)

// ErrVerificationFailed is returned when at least one binding could not be read back.
var ErrVerificationFailed = errors.New("demo verification failed")

var expectedStates = map[demo.Fixture]model.EventState{
	demo.FixtureScheduled: model.StateScheduled,
	demo.FixtureLive:      model.StateLive,
	demo.FixtureFinal:     model.StateFinal,
}

// Plan returns one binding per league and fixture.
func Plan(leagues []model.League) []Binding {
	out := make([]Binding, 0, len(leagues)*len(demo.Fixtures()))
	for _, l := range leagues {
		for _, f := range demo.Fixtures() {
			id := demo.EventID(l, f)
			out = append(out, Binding{ContentID: "seed-" + id, League: l, Fixture: f, EventID: id})
		}
	}
	return out
}

// Run seeds and verifies the demo games, writing a summary table to out.
func Run(ctx context.Context, config *Config, out io.Writer) (*Stats, error) {
	log := logger.Get().Named("demoseed")
	stats := &Stats{StartTime: time.Now()}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	client := newHTTPClient(config.BaseURL, config.Timeout)
	if err := client.checkHealth(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	bindings := Plan(config.Leagues)
	stats.Planned = len(bindings)
	log.Info(ctx, "seeding demo games",
		logger.String("baseURL", config.BaseURL),
		logger.Int("bindings", len(bindings)),
		logger.Int("workers", workers))

	results := make([]Result, len(bindings))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range bindings {
		i, b := i, b
		g.Go(func() error {
			res := seedOne(gctx, client, b)
			if config.Verbose {
				log.Info(gctx, "bound", logger.String("contentId", b.ContentID), logger.String("state", string(res.State)), logger.Error(res.Err))
			}
			mu.Lock()
			results[i] = res
			if res.Err == nil {
				stats.Verified++
			} else {
				stats.Failed++
			}
			if res.Bound {
				stats.Bound++
			}
			mu.Unlock()
			// Failures are collected, not propagated, so siblings keep going.
			return nil
		})
	}
	_ = g.Wait()

	stats.Duration = time.Since(stats.StartTime)
	writeSummary(out, results, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrVerificationFailed, stats.Failed, stats.Planned)
	}
	return stats, nil
}

func seedOne(ctx context.Context, client *httpClient, b Binding) Result {
	res := Result{Binding: b}
	if err := client.bind(ctx, b); err != nil {
		res.Err = fmt.Errorf("bind: %w", err)
		return res
	}
	res.Bound = true
	info, err := client.score(ctx, b.ContentID)
	if err != nil {
		res.Err = fmt.Errorf("read back: %w", err)
		return res
	}
	res.State = info.Event.State
	switch {
	case info.Event.League != b.League:
		res.Err = fmt.Errorf("league %q, want %q", info.Event.League, b.League)
	case info.Event.State != expectedStates[b.Fixture]:
		res.Err = fmt.Errorf("state %s, want %s", info.Event.State, expectedStates[b.Fixture])
	}
	return res
}

func writeSummary(out io.Writer, results []Result, stats *Stats) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CONTENT\tLEAGUE\tFIXTURE\tSTATE\tRESULT")
	for _, r := range results {
		result := "ok"
		if r.Err != nil {
			result = r.Err.Error()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ContentID, r.League, r.Fixture, r.State, result)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(out, "\n%d planned, %d verified, %d failed in %s\n",
		stats.Planned, stats.Verified, stats.Failed, stats.Duration.Round(time.Millisecond))
}
