package http

import (
	"time"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/internal/domain/state"
)

// ScraperConfigDTO is the combined view the dashboard polls: the
// tracked accounts plus the scheduler policy.
type ScraperConfigDTO struct {
	Accounts      []source.Source `json:"accounts"`
	Enabled       bool            `json:"enabled"`
	IntervalHours float64         `json:"intervalHours"`
	LastRun       *time.Time      `json:"lastRun"`
}

func ToScraperConfigDTO(accounts []source.Source, cfg state.SchedulerConfig) ScraperConfigDTO {
	if accounts == nil {
		accounts = []source.Source{}
	}
	return ScraperConfigDTO{
		Accounts:      accounts,
		Enabled:       cfg.Enabled,
		IntervalHours: cfg.IntervalHours,
		LastRun:       cfg.LastRun,
	}
}

type UpdateScraperConfigRequest struct {
	Enabled       *bool    `json:"enabled"`
	IntervalHours *float64 `json:"intervalHours"`
}

type AddAccountRequest struct {
	Username string `json:"username" binding:"required"`
}

type MarkUsedRequest struct {
	Used *bool `json:"used"`
}

type ProfileLookupDTO struct {
	Success bool              `json:"success"`
	Profile instagram.Profile `json:"profile"`
	Posts   []instagram.Post  `json:"posts"`
	Notice  string            `json:"notice,omitempty"`
}
