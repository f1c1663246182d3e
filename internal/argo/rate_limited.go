package argo

import (
	"context"
	"fmt"

	"github.com/argoview/backend-go/internal/models"
	"golang.org/x/time/rate"
)

// RateLimitedSource wraps a Source so it never exceeds the repository's request budget
type RateLimitedSource struct {
	source  Source
	limiter *rate.Limiter
}

// NewRateLimitedSource allows rps requests per second (fractional for less than one)
// with bursts of up to burst requests.
func NewRateLimitedSource(source Source, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name keeps the wrapped source's name so errors still say which repository failed
func (r *RateLimitedSource) Name() string {
	return r.source.Name()
}

func (r *RateLimitedSource) Fetch(ctx context.Context, params models.QueryParams) (*models.SourceData, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.Fetch(ctx, params)
}
