package services

import (
	"context"
	"strings"

	"github.com/Saranya396/projectt/internal/domain/repositories"
)

// appendRecord is a load-modify-save of a whole collection. Nothing
// serialises concurrent callers; the later Save wins.
func appendRecord[T any](ctx context.Context, repo repositories.CollectionRepository[T], record T) error {
	records, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, append(records, record))
}

// filterRecords keeps the records matching keep, preserving order
func filterRecords[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// loadScoped loads a collection and keeps the rows owned by email
func loadScoped[T any](ctx context.Context, repo repositories.CollectionRepository[T], email string, owner func(T) string) ([]T, error) {
	records, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filterRecords(records, func(r T) bool { return owner(r) == email }), nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
