// Package abi holds the ABI data model shared by every resolution stage:
// a flat sequence of entries, each one either a function keyed by its
// 4-byte selector or an event keyed by its topic hash.
//
// Entries start minimal (often just a selector extracted from bytecode) and
// accumulate attributes as more trustworthy sources recognize them. They are
// only ever appended to and mutated in place, never removed, so the sequence
// keeps its discovery order end to end.
package abi

const (
	Function = "function"
	Event    = "event"
)

// Param is one input or output of a function or event, with a canonical EVM
// type string such as "uint256" or "(address,uint96)[]".
type Param struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// Entry is a tagged variant over function and event.
//
// Function entries carry Selector; event entries carry Hash. Everything else
// is optional and depends on which sources recognized the entry: a verified
// registry fills in the full shape, a signature database fills in Sig,
// SigAlts and whatever can be parsed out of the first signature, and a bare
// bytecode candidate carries nothing at all after reliability filtering.
type Entry struct {
	Type string `json:"type"`

	// function
	Selector        string  `json:"selector,omitempty"` // 0x + 8 hex chars
	Name            string  `json:"name,omitempty"`
	Inputs          []Param `json:"inputs,omitempty"`
	Outputs         []Param `json:"outputs,omitempty"`
	StateMutability string  `json:"stateMutability,omitempty"`
	Payable         bool    `json:"payable,omitempty"`

	// event
	Hash string `json:"hash,omitempty"` // 0x + 64 hex chars

	// enrichment
	Sig     string   `json:"sig,omitempty"`
	SigAlts []string `json:"sigAlts,omitempty"`
}

// ID returns the identifier an external database would be queried with:
// the selector for functions, the topic hash for events.
func (e *Entry) ID() string {
	if e.Type == Event {
		return e.Hash
	}
	return e.Selector
}

// ABI is an ordered sequence of entries. Order is discovery order: registry
// order when loaded from a registry, extraction order when derived from
// bytecode. Selectors are unique within one source but collisions across
// independently-sourced candidates are possible and are not deduplicated.
type ABI []*Entry

// Functions returns the function entries, preserving order.
func (a ABI) Functions() ABI {
	result := ABI{}
	for _, e := range a {
		if e.Type == Function {
			result = append(result, e)
		}
	}
	return result
}

// Events returns the event entries, preserving order.
func (a ABI) Events() ABI {
	result := ABI{}
	for _, e := range a {
		if e.Type == Event {
			result = append(result, e)
		}
	}
	return result
}

// Find returns the first entry whose selector or topic hash equals id, or
// nil if there is none.
func (a ABI) Find(id string) *Entry {
	for _, e := range a {
		if e.ID() == id {
			return e
		}
	}
	return nil
}
