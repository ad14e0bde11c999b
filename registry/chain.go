package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/tranvictor/abiscope/abi"
	"github.com/tranvictor/abiscope/resolver"
)

// Chain tries several registries in order and answers with the first
// non-empty ABI. A registry that fails is skipped; only when every registry
// fails does Chain fail, with the individual errors joined.
type Chain []resolver.ABILoader

func (c Chain) LoadABI(ctx context.Context, address string) (abi.ABI, error) {
	errs := []error{}
	for _, loader := range c {
		loaded, err := loader.LoadABI(ctx, address)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(loaded) > 0 {
			return loaded, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(c) {
		return nil, fmt.Errorf("couldn't load ABI from any registry: %w", errors.Join(errs...))
	}
	return abi.ABI{}, nil
}
