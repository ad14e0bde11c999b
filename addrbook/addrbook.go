// Package addrbook maps human-readable names to Ethereum addresses. The
// production implementation is a JSON book file (~/.abiscope/addresses.json,
// the same format as a plain {"0xaddr": "description"} map) searched with
// fuzzy matching and, for large books, a bleve full-text index. Tests inject
// [Map], which resolves deterministically without touching the filesystem.
package addrbook

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// AddressDesc is one book entry: a hex address and its human description.
type AddressDesc struct {
	Address string
	Desc    string
}

// Book is a fuzzy-searchable set of address descriptions.
type Book struct {
	source FuzzySource
}

// NewBook builds a book from an address -> description map.
func NewBook(data map[string]string) *Book {
	source := FuzzySource{}
	for addr, desc := range data {
		source = append(source, AddressDesc{
			Address: strings.ToLower(addr),
			Desc:    desc,
		})
	}
	// deterministic match order for equal fuzzy scores
	sort.Slice(source, func(i, j int) bool {
		return source[i].Address < source[j].Address
	})
	return &Book{source: source}
}

// LoadBook reads a book file: a JSON object mapping addresses to
// descriptions.
func LoadBook(path string) (*Book, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read address book %s: %w", path, err)
	}
	data := map[string]string{}
	if err = json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("couldn't parse address book %s: %w", path, err)
	}
	return NewBook(data), nil
}

func (b *Book) matches(input string) ([]AddressDesc, []int) {
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), b.source)
	result := []AddressDesc{}
	scores := []int{}
	for i := 0; i < 10 && i < len(matches); i++ {
		result = append(result, b.source[matches[i].Index])
		scores = append(scores, matches[i].Score)
	}
	return result, scores
}

// Candidates returns up to 10 fuzzy matches for input, best first.
func (b *Book) Candidates(input string) []AddressDesc {
	result, _ := b.matches(input)
	return result
}

// Find returns the address of the best fuzzy match for input, or an error
// when nothing in the book resembles it.
func (b *Book) Find(input string) (string, error) {
	result, _ := b.matches(input)
	if len(result) == 0 {
		return "", fmt.Errorf("no address found for \"%s\"", input)
	}
	return result[0].Address, nil
}

// Len reports how many entries the book holds.
func (b *Book) Len() int {
	return len(b.source)
}
