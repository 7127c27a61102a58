package scraper

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/adapters/event"
)

var tracer = otel.Tracer("scraper_usecase")

type SourceResult struct {
	Account  string `json:"account"`
	Success  bool   `json:"success"`
	NewPosts int    `json:"newPosts"`
	Error    string `json:"error,omitempty"`
}

type RunReport struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Timestamp     *time.Time     `json:"timestamp,omitempty"`
	Results       []SourceResult `json:"results,omitempty"`
	TotalNewPosts int            `json:"totalNewPosts"`
	LibrarySize   int            `json:"librarySize"`
}

// RunNow executes one ingestion pass over every tracked account, in
// registry order. One account failing never skips the rest; each
// outcome is captured in its own result entry. Runs serialize on an
// internal mutex so concurrent triggers never interleave writes.
func (s *Scheduler) RunNow(ctx context.Context) (*RunReport, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	ctx, span := tracer.Start(ctx, "RunNow")
	defer span.End()

	accounts := s.registry.List()
	if len(accounts) == 0 {
		return &RunReport{Success: false, Message: "No accounts configured"}, nil
	}

	report := &RunReport{Success: true, Results: make([]SourceResult, 0, len(accounts))}

	for _, account := range accounts {
		result := s.scrapeAccount(ctx, account.Username)
		report.Results = append(report.Results, result)
		report.TotalNewPosts += result.NewPosts
	}

	now := s.now().UTC()
	s.cfgMu.Lock()
	s.cfg.LastRun = &now
	s.cfgMu.Unlock()

	report.Timestamp = &now
	report.LibrarySize = s.store.Len()

	span.SetAttributes(
		attribute.Int("accounts", len(accounts)),
		attribute.Int("new_posts", report.TotalNewPosts),
	)
	s.logger.Info("scrape run completed",
		zap.Int("accounts", len(accounts)),
		zap.Int("new_posts", report.TotalNewPosts),
		zap.Int("library_size", report.LibrarySize))

	if s.persister != nil {
		s.persister.Persist(ctx)
	}
	s.publishRunCompleted(report)

	return report, nil
}

func (s *Scheduler) scrapeAccount(ctx context.Context, username string) SourceResult {
	data, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		return SourceResult{Account: username, Success: false, Error: err.Error()}
	}
	if data.Profile.IsPrivate {
		return SourceResult{Account: username, Success: false, Error: "Private account"}
	}

	newCount := s.store.Ingest(data.Posts, username)
	return SourceResult{Account: username, Success: true, NewPosts: newCount}
}

func (s *Scheduler) publishRunCompleted(report *RunReport) {
	if s.kafkaClient == nil || report.Timestamp == nil {
		return
	}
	payload := event.RunCompletedPayload{
		Timestamp:     *report.Timestamp,
		TotalNewPosts: report.TotalNewPosts,
		LibrarySize:   report.LibrarySize,
		Results:       make([]event.RunResult, len(report.Results)),
	}
	for i, r := range report.Results {
		payload.Results[i] = event.RunResult{
			Account:  r.Account,
			Success:  r.Success,
			NewPosts: r.NewPosts,
			Error:    r.Error,
		}
	}
	if err := s.kafkaClient.PublishRunCompleted(context.Background(), payload); err != nil {
		s.logger.Error("failed to publish run completed event", err)
	}
}
