package library

import (
	"time"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
)

// MediaItem is one ingested post plus the bookkeeping the library adds
// on first import. LibraryID is assigned locally and never reused;
// the embedded post keeps the source-assigned ID.
type MediaItem struct {
	instagram.Post
	LibraryID     string     `json:"libraryId"`
	SourceAccount string     `json:"sourceAccount"`
	ImportedAt    time.Time  `json:"importedAt"`
	Used          bool       `json:"used"`
	UsedAt        *time.Time `json:"usedAt,omitempty"`
}

type SortBy string

type SortOrder string

const (
	SortByDate  SortBy = "date"
	SortByLikes SortBy = "likes"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Query selects, orders and pages library items. All provided filters
// must hold; Search matches case-insensitively against the caption.
type Query struct {
	Account   string
	Used      *bool
	Search    string
	SortBy    SortBy
	SortOrder SortOrder
	Page      int
	Limit     int
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type AccountCount struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

type Stats struct {
	TotalItems int            `json:"totalItems"`
	UsedItems  int            `json:"usedItems"`
	Accounts   []AccountCount `json:"accounts"`
}
