package addrbook

import (
	"fmt"
	"strings"
)

// Map is a lightweight book for tests. It maps lower-cased names to
// addresses; anything not in the map misses, without any filesystem or
// fuzzy matching involved.
//
// Example:
//
//	book := addrbook.Map{
//	    "usdc": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
//	}
type Map map[string]string

func (m Map) Find(input string) (string, error) {
	if addr, ok := m[strings.ToLower(input)]; ok {
		return addr, nil
	}
	return "", fmt.Errorf("no address found for \"%s\"", input)
}
