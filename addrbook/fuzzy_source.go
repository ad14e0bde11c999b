package addrbook

import (
	"fmt"
	"strings"
)

// FuzzySource adapts a list of address descriptions to the fuzzy matcher's
// source interface. Matching runs over "desc_address" so both the human
// name and a pasted address fragment can hit.
type FuzzySource []AddressDesc

func (fs FuzzySource) Len() int {
	return len(fs)
}

func (fs FuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", strings.Replace(fs[i].Desc, " ", "_", -1), fs[i].Address)
}
