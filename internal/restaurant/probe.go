package restaurant

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
)

// ProbeResult is the outcome of listing one collection.
type ProbeResult struct {
	Path     string        `json:"path"`
	OK       bool          `json:"ok"`
	Status   int           `json:"status,omitempty"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Probe lists every collection concurrently and reports each outcome in
// collection order. A failed list does not cancel the others.
func (s *Service) Probe(ctx context.Context) []ProbeResult {
	checks := []struct {
		path string
		list func(context.Context) (int, error)
	}{
		{DishesPath, countOf(s.Dishes.List)},
		{MenusPath, countOf(s.Menus.List)},
		{SalesPath, countOf(s.Sales.List)},
		{DishMenusPath, countOf(s.DishMenus.List)},
		{SaleMenusPath, countOf(s.SaleMenus.List)},
	}

	results := make([]ProbeResult, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			start := time.Now()
			n, err := c.list(ctx)
			r := ProbeResult{Path: c.path, Count: n, Duration: time.Since(start), OK: err == nil}
			if err != nil {
				r.Status = client.StatusCode(err)
				r.Error = err.Error()
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Healthy reports whether every probe succeeded.
func Healthy(results []ProbeResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

func countOf[T any](list func(context.Context) ([]T, error)) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		return len(items), err
	}
}
