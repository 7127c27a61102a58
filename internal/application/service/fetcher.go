package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// FetchStrategy is one concrete way of pulling a profile and its
// timeline out of Instagram. Implementations live in adapters/instagram.
type FetchStrategy interface {
	Name() string
	Fetch(ctx context.Context, username string) (*instagram.ProfileData, error)
}

// Attempt records why one strategy failed for a username.
type Attempt struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}

// ResolutionError carries every failed attempt so the caller can see
// which layer broke, not just the last one.
type ResolutionError struct {
	Username string
	Attempts []Attempt
}

func (e *ResolutionError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %s", a.Strategy, a.Reason)
	}
	return fmt.Sprintf("could not resolve '%s' (%s)", e.Username, strings.Join(parts, "; "))
}

func (e *ResolutionError) Unwrap() error {
	return apperror.ErrUnavailable
}

// Resolver tries an ordered list of fetch strategies and returns the
// first well-formed result. A profile the service marks private still
// resolves, with the timeline emptied; only exhausting every strategy
// is a failure. Each strategy gets its own full timeout, so one slow
// attempt cannot starve the fallbacks of their budget.
type Resolver struct {
	strategies []FetchStrategy
	timeout    time.Duration
	logger     logger.Logger
}

func NewResolver(strategies []FetchStrategy, timeout time.Duration, log logger.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Resolver{strategies: strategies, timeout: timeout, logger: log}
}

func (r *Resolver) Resolve(ctx context.Context, username string) (*instagram.ProfileData, error) {
	var attempts []Attempt

	for _, strat := range r.strategies {
		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		data, err := strat.Fetch(attemptCtx, username)
		cancel()
		if err != nil {
			r.logger.Warn("fetch strategy failed",
				zap.String("strategy", strat.Name()),
				zap.String("username", username),
				zap.String("reason", err.Error()))
			attempts = append(attempts, Attempt{Strategy: strat.Name(), Reason: err.Error()})
			continue
		}
		if data == nil || data.Profile.Username == "" {
			attempts = append(attempts, Attempt{Strategy: strat.Name(), Reason: "user not found"})
			continue
		}
		if data.Profile.IsPrivate {
			data.Posts = nil
		}
		return data, nil
	}

	return nil, &ResolutionError{Username: username, Attempts: attempts}
}
