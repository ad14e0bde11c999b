package resolver

import (
	"github.com/tranvictor/abiscope/abi"
)

// Filter enforces the default reliability policy on a bytecode-derived
// candidate ABI: function entries are reduced to their bare selector and
// event entries are dropped entirely. Inferred argument types, mutability
// guesses and names come from heuristic static analysis and are not
// dependable without corroboration from a registry or signature database,
// so none of them survive.
//
// The asymmetry is deliberate: a bare selector is still useful for dispatch
// identification, but a bare candidate topic hash is too unreliable to
// surface at all under default settings. Filter is pure and idempotent.
func Filter(candidates abi.ABI) abi.ABI {
	result := abi.ABI{}
	for _, e := range candidates {
		if e.Type != abi.Function {
			continue
		}
		result = append(result, &abi.Entry{
			Type:     abi.Function,
			Selector: e.Selector,
		})
	}
	return result
}
