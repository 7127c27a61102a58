package library

import (
	"context"

	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type ListItemsUseCase struct {
	store  *library.Store
	logger logger.Logger
}

func NewListItemsUseCase(store *library.Store, log logger.Logger) *ListItemsUseCase {
	return &ListItemsUseCase{store: store, logger: log}
}

type ListItemsInput struct {
	Account   string
	Used      *bool
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ListItemsOutput struct {
	Items      []library.MediaItem
	Pagination library.Pagination
}

func (uc *ListItemsUseCase) Execute(ctx context.Context, input ListItemsInput) (*ListItemsOutput, error) {
	if input.Limit <= 0 || input.Limit > 100 {
		input.Limit = 50
	}
	if input.Page <= 0 {
		input.Page = 1
	}

	q := library.Query{
		Account:   input.Account,
		Used:      input.Used,
		Search:    input.Search,
		SortBy:    library.SortByDate,
		SortOrder: library.OrderDesc,
		Page:      input.Page,
		Limit:     input.Limit,
	}
	if input.SortBy == string(library.SortByLikes) {
		q.SortBy = library.SortByLikes
	}
	if input.SortOrder == string(library.OrderAsc) {
		q.SortOrder = library.OrderAsc
	}

	items, pagination := uc.store.Query(q)
	return &ListItemsOutput{Items: items, Pagination: pagination}, nil
}
