package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tranvictor/abiscope/abi"
	"github.com/tranvictor/abiscope/fragment"
)

// rawParam mirrors one input/output in ABI JSON. Tuple parameters carry
// their flattened shape in Components.
type rawParam struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Components []rawParam `json:"components"`
}

// canonicalType renders the parameter's type the way signatures spell it:
// tuples become parenthesized component lists, array suffixes survive.
func (p rawParam) canonicalType() string {
	if !strings.HasPrefix(p.Type, "tuple") {
		return p.Type
	}
	inner := make([]string, len(p.Components))
	for i, c := range p.Components {
		inner[i] = c.canonicalType()
	}
	return "(" + strings.Join(inner, ",") + ")" + strings.TrimPrefix(p.Type, "tuple")
}

type rawEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name"`
	Inputs          []rawParam `json:"inputs"`
	Outputs         []rawParam `json:"outputs"`
	StateMutability string     `json:"stateMutability"`
	Constant        *bool      `json:"constant"`
	Payable         *bool      `json:"payable"`
}

// mutability normalizes across old (constant/payable flags) and new
// (stateMutability field) ABI JSON vintages.
func (r rawEntry) mutability() (string, bool) {
	if r.StateMutability != "" {
		return r.StateMutability, r.StateMutability == "payable"
	}
	if r.Payable != nil && *r.Payable {
		return "payable", true
	}
	if r.Constant != nil && *r.Constant {
		return "view", false
	}
	return "", false
}

// FromJSON converts an ABI JSON document into the resolver's entry model,
// preserving the document's order. go-ethereum's abi.JSON can't serve here:
// it stores methods in maps and loses registry order, which the resolver
// guarantees end to end. Constructor, fallback and receive entries carry no
// selector and are skipped.
func FromJSON(data []byte) (abi.ABI, error) {
	raw := []rawEntry{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal ABI JSON: %w", err)
	}
	result := abi.ABI{}
	for _, r := range raw {
		switch r.Type {
		case "function", "":
			entry := &abi.Entry{
				Type:   abi.Function,
				Name:   r.Name,
				Inputs: params(r.Inputs),
			}
			if r.Outputs != nil {
				entry.Outputs = params(r.Outputs)
			}
			entry.StateMutability, entry.Payable = r.mutability()
			entry.Sig = fragment.Canonical(r.Name, entry.Inputs)
			entry.Selector = fragment.Selector(entry.Sig)
			result = append(result, entry)
		case "event":
			entry := &abi.Entry{
				Type:   abi.Event,
				Name:   r.Name,
				Inputs: params(r.Inputs),
			}
			entry.Sig = fragment.Canonical(r.Name, entry.Inputs)
			entry.Hash = fragment.EventTopic(entry.Sig)
			result = append(result, entry)
		}
	}
	return result, nil
}

func params(raw []rawParam) []abi.Param {
	result := make([]abi.Param, len(raw))
	for i, p := range raw {
		result[i] = abi.Param{Name: p.Name, Type: p.canonicalType()}
	}
	return result
}
