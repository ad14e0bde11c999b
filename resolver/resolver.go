// Package resolver turns a contract address, or a human-readable name,
// into a best-effort ABI using a layered fallback strategy: a verified ABI
// registry first, raw bytecode inspection second, signature-database
// enrichment third. Each data source is a swappable capability behind a
// small interface; the orchestrator only sequences them, merges their
// partial answers and enforces a reliability policy on unverified data.
package resolver

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/tranvictor/abiscope/abi"
	"github.com/tranvictor/abiscope/fragment"
	"github.com/tranvictor/abiscope/selectors"
)

var addressPattern = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// IsAddress reports whether str already is a normalized hex address. Anything
// that fails this format is treated as a name and routed through the
// provider's name resolution.
func IsAddress(str string) bool {
	return addressPattern.MatchString(str)
}

// Provider gives access to the chain: it resolves human-readable names and
// fetches deployed bytecode. It is the only required capability.
type Provider interface {
	// ResolveName maps a name to an address. An empty string with a nil
	// error means "unknown name", which is not a failure.
	ResolveName(ctx context.Context, name string) (string, error)
	GetCode(ctx context.Context, address string) ([]byte, error)
}

// ABILoader looks an address up in a verified-source registry. An empty
// result with a nil error means "no known entries", not a failure.
type ABILoader interface {
	LoadABI(ctx context.Context, address string) (abi.ABI, error)
}

// SignatureLookup maps selectors and topic hashes back to candidate
// signature text, most-likely first. Empty results mean "unknown", not
// failure.
type SignatureLookup interface {
	LoadFunctions(ctx context.Context, selector string) ([]string, error)
	LoadEvents(ctx context.Context, topicHash string) ([]string, error)
}

// Extractor derives a raw candidate ABI from deployed bytecode.
type Extractor func(code []byte) abi.ABI

// Config carries the per-request capabilities and hooks. Provider is
// required; every other capability is optional and disabled when nil.
type Config struct {
	Provider        Provider
	ABILoader       ABILoader       // nil disables the registry stage
	SignatureLookup SignatureLookup // nil disables enrichment
	Extractor       Extractor       // nil defaults to selectors.Extract

	// EnableExperimentalMetadata keeps the heuristic attributes bytecode
	// extraction guesses (input types, mutability, event entries) instead of
	// reducing candidates to bare selectors.
	EnableExperimentalMetadata bool

	// OnProgress is a fire-and-forget notification called synchronously as
	// stages start. It must not block and cannot influence control flow.
	OnProgress func(phase string, detail any)

	// OnError is consulted when a stage fails. Returning true aborts the
	// pipeline immediately with whatever has been accumulated (an empty ABI
	// if nothing yet); returning false swallows the failure and continues to
	// the next fallback. Calls are serialized, never concurrent.
	OnError func(phase string, err error) bool
}

func (c *Config) progress(phase string, detail any) {
	if c.OnProgress != nil {
		c.OnProgress(phase, detail)
	}
}

// session serializes error-hook consultation across the concurrent
// enrichment tasks and remembers whether an abort was requested.
type session struct {
	cfg     *Config
	mu      sync.Mutex
	aborted bool
}

// fail routes err through the error hook and reports whether the pipeline
// should abort. With no hook configured failures degrade silently.
func (s *session) fail(phase string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aborted {
		return true
	}
	if s.cfg.OnError != nil && s.cfg.OnError(phase, err) {
		s.aborted = true
	}
	return s.aborted
}

func (s *session) isAborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

// Resolve runs the full pipeline for one address or name. It never returns
// an error for ordinary lookup failures: the result just degrades from a
// verified registry ABI down to bare selectors, or to an empty ABI when
// every source fails and the error hook requested an abort. The only error
// it returns is a missing provider.
//
// Stages 1-4 are strictly sequential; signature enrichment fans out one
// concurrent lookup per candidate entry and joins all of them before
// returning. Callers bound the whole call with ctx; there is no internal
// timeout.
func Resolve(ctx context.Context, addressOrName string, cfg Config) (abi.ABI, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("resolver: no provider configured")
	}
	s := &session{cfg: &cfg}

	address := addressOrName
	if !IsAddress(address) {
		cfg.progress("resolveName", addressOrName)
		resolved, err := cfg.Provider.ResolveName(ctx, addressOrName)
		if err == nil && resolved != "" {
			address = resolved
		}
		// unresolved names fall through unchanged; downstream simply finds
		// no code or registry data for them
	}

	if cfg.ABILoader != nil {
		cfg.progress("abiLoader", address)
		loaded, err := cfg.ABILoader.LoadABI(ctx, address)
		if err != nil {
			if s.fail("abiLoad", err) {
				return abi.ABI{}, nil
			}
		} else if len(loaded) > 0 {
			// the most trustworthy source ends the pipeline
			return loaded, nil
		}
	}

	cfg.progress("getCode", address)
	var candidates abi.ABI
	code, err := cfg.Provider.GetCode(ctx, address)
	if err != nil {
		if s.fail("getCode", err) {
			return abi.ABI{}, nil
		}
	} else {
		extract := cfg.Extractor
		if extract == nil {
			extract = selectors.Extract
		}
		candidates = extract(code)
	}

	if !cfg.EnableExperimentalMetadata {
		candidates = Filter(candidates)
	}

	if cfg.SignatureLookup == nil || len(candidates) == 0 {
		return candidates, nil
	}

	cfg.progress("signatureLookup", len(candidates))
	var wg sync.WaitGroup
	for _, entry := range candidates {
		if s.isAborted() {
			break
		}
		wg.Add(1)
		go func(e *abi.Entry) {
			defer wg.Done()
			// each task has exclusive write access to its one entry
			if err := enrich(ctx, cfg.SignatureLookup, e); err != nil {
				s.fail("signatureLookup", err)
			}
		}(entry)
	}
	wg.Wait()
	// entries stay in discovery order regardless of completion order, and
	// an enrichment abort never drops what was already accumulated
	return candidates, nil
}

// enrich queries the signature database for one entry and merges the answer
// in place. Zero hits leave the entry untouched.
func enrich(ctx context.Context, lookup SignatureLookup, e *abi.Entry) error {
	var hits []string
	var err error
	switch e.Type {
	case abi.Function:
		hits, err = lookup.LoadFunctions(ctx, e.Selector)
	case abi.Event:
		hits, err = lookup.LoadEvents(ctx, e.Hash)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return nil
	}

	e.Sig = hits[0]
	e.SigAlts = hits[1:]
	mergeSignature(e, hits[0])
	return nil
}

// mergeSignature folds the fields parsable from the first signature hit into
// the entry. Signature databases typically carry no return-type information,
// so an already-present output list is never overwritten by an absent one.
func mergeSignature(e *abi.Entry, sig string) {
	var parsed *abi.Entry
	var err error
	switch e.Type {
	case abi.Function:
		parsed, err = fragment.ParseFunction(sig)
	case abi.Event:
		parsed, err = fragment.ParseEvent(sig)
	}
	if err != nil || parsed == nil {
		// an unparsable hit still counts as a resolved signature string
		return
	}
	if parsed.Name != "" {
		e.Name = parsed.Name
	}
	if parsed.Inputs != nil {
		e.Inputs = parsed.Inputs
	}
	if parsed.Outputs != nil {
		e.Outputs = parsed.Outputs
	}
	if parsed.StateMutability != "" {
		e.StateMutability = parsed.StateMutability
		e.Payable = parsed.Payable
	}
}
