// Package fragment normalizes human-readable signature text, e.g.
// "transfer(address,uint256)", into structured ABI entries. Signature
// databases and registries answer in this textual form; the resolver merges
// the parsed structure back into its candidate entries.
package fragment

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tranvictor/abiscope/abi"
)

// keywords that may appear between a parameter's type and its name and carry
// no ABI-level information
var paramModifiers = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
	"indexed":  true,
}

// Selector returns the 4-byte dispatch identifier of a canonical function
// signature, hex encoded with a 0x prefix.
func Selector(canonical string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(canonical))[:4])
}

// EventTopic returns the 32-byte topic hash of a canonical event signature,
// hex encoded with a 0x prefix.
func EventTopic(canonical string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(canonical)))
}

// ParseFunction parses signature text of the form
//
//	name(type [name], ...) [view|pure|payable|nonpayable] [returns (type, ...)]
//
// into a function entry. The returned entry carries the name, the input
// types, the selector computed from the canonical form, the mutability
// markers when stated, and the output types when a returns clause is
// present. Fields the text doesn't state are left zero.
func ParseFunction(text string) (*abi.Entry, error) {
	name, inputs, rest, err := splitSignature(text)
	if err != nil {
		return nil, err
	}
	entry := &abi.Entry{
		Type:     abi.Function,
		Name:     name,
		Inputs:   inputs,
		Selector: Selector(Canonical(name, inputs)),
	}
	for len(rest) > 0 {
		var token string
		token, rest = nextToken(rest)
		switch token {
		case "view", "pure", "nonpayable":
			entry.StateMutability = token
		case "constant":
			entry.StateMutability = "view"
		case "payable":
			entry.StateMutability = "payable"
			entry.Payable = true
		case "returns":
			group, remainder, err := takeParenGroup(rest)
			if err != nil {
				return nil, fmt.Errorf("bad returns clause in %q: %w", text, err)
			}
			outputs, err := parseParams(group)
			if err != nil {
				return nil, err
			}
			entry.Outputs = outputs
			rest = remainder
		case "function", "external", "public":
			// tolerated solidity-style noise
		default:
			return nil, fmt.Errorf("unexpected token %q in signature %q", token, text)
		}
	}
	return entry, nil
}

// ParseEvent parses event signature text into an event entry with name,
// input types and the topic hash computed from the canonical form.
func ParseEvent(text string) (*abi.Entry, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "event ")
	name, inputs, rest, err := splitSignature(text)
	if err != nil {
		return nil, err
	}
	if token, _ := nextToken(rest); token != "" && token != "anonymous" {
		return nil, fmt.Errorf("unexpected token %q in event signature %q", token, text)
	}
	return &abi.Entry{
		Type:   abi.Event,
		Name:   name,
		Inputs: inputs,
		Hash:   EventTopic(Canonical(name, inputs)),
	}, nil
}

// Canonical renders name and input types back into the canonical signature
// form that selectors and topic hashes are derived from: no parameter names,
// no spaces.
func Canonical(name string, inputs []abi.Param) string {
	types := make([]string, len(inputs))
	for i, p := range inputs {
		types[i] = p.Type
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(types, ","))
}

// splitSignature splits "name(params)suffix" into its three parts.
func splitSignature(text string) (name string, inputs []abi.Param, rest string, err error) {
	text = strings.TrimSpace(text)
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return "", nil, "", fmt.Errorf("no parameter list in signature %q", text)
	}
	name = strings.TrimSpace(text[:open])
	if name == "" {
		return "", nil, "", fmt.Errorf("no name in signature %q", text)
	}
	group, rest, err := takeParenGroup(text[open:])
	if err != nil {
		return "", nil, "", fmt.Errorf("bad signature %q: %w", text, err)
	}
	inputs, err = parseParams(group)
	if err != nil {
		return "", nil, "", err
	}
	return name, inputs, rest, nil
}

// takeParenGroup expects s to start (after optional spaces) with '(' and
// returns the content of the balanced group and whatever follows it.
func takeParenGroup(s string) (group string, rest string, err error) {
	s = strings.TrimLeft(s, " ")
	if len(s) == 0 || s[0] != '(' {
		return "", "", fmt.Errorf("expected '(' at %q", s)
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], nil
			}
		}
	}
	return "", "", fmt.Errorf("unbalanced parentheses at %q", s)
}

func parseParams(list string) ([]abi.Param, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return []abi.Param{}, nil
	}
	items := splitTop(list)
	result := make([]abi.Param, 0, len(items))
	for _, item := range items {
		p, err := parseParam(item)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func parseParam(item string) (abi.Param, error) {
	parts := strings.Fields(item)
	if len(parts) == 0 {
		return abi.Param{}, fmt.Errorf("empty parameter")
	}
	p := abi.Param{Type: parts[0]}
	for _, token := range parts[1:] {
		if paramModifiers[token] {
			continue
		}
		p.Name = token
	}
	return p, nil
}

// splitTop splits a comma-separated list at depth zero so tuple types like
// "(address,uint96)[]" survive intact.
func splitTop(s string) []string {
	result := []string{}
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}

func nextToken(s string) (token string, rest string) {
	s = strings.TrimLeft(s, " ")
	if s == "" {
		return "", ""
	}
	end := strings.IndexAny(s, " (")
	if end < 0 {
		return s, ""
	}
	if s[end] == '(' {
		return s[:end], s[end:]
	}
	return s[:end], s[end+1:]
}
