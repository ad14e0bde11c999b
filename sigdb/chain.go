package sigdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/tranvictor/abiscope/resolver"
)

// Chain tries several signature databases in order and answers with the
// first non-empty hit list. A database that fails is skipped; Chain only
// fails when every database fails.
type Chain []resolver.SignatureLookup

func (c Chain) lookup(
	ctx context.Context,
	load func(resolver.SignatureLookup) ([]string, error),
) ([]string, error) {
	errs := []error{}
	for _, db := range c {
		hits, err := load(db)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(hits) > 0 {
			return hits, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(c) {
		return nil, fmt.Errorf("couldn't look up signature in any database: %w", errors.Join(errs...))
	}
	return []string{}, nil
}

func (c Chain) LoadFunctions(ctx context.Context, selector string) ([]string, error) {
	return c.lookup(ctx, func(db resolver.SignatureLookup) ([]string, error) {
		return db.LoadFunctions(ctx, selector)
	})
}

func (c Chain) LoadEvents(ctx context.Context, topicHash string) ([]string, error) {
	return c.lookup(ctx, func(db resolver.SignatureLookup) ([]string, error) {
		return db.LoadEvents(ctx, topicHash)
	})
}
