package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tranvictor/abiscope/abi"
	"github.com/tranvictor/abiscope/addrbook"
	"github.com/tranvictor/abiscope/cache"
	"github.com/tranvictor/abiscope/config"
	"github.com/tranvictor/abiscope/networks"
	"github.com/tranvictor/abiscope/provider"
	"github.com/tranvictor/abiscope/registry"
	"github.com/tranvictor/abiscope/resolver"
	"github.com/tranvictor/abiscope/sigdb"
	"github.com/tranvictor/abiscope/ui"
)

// indexing pays off only past this book size; below it fuzzy matching alone
// is both faster and more forgiving
const indexThreshold = 500

func currentNetwork() (networks.Network, error) {
	return networks.GetNetwork(config.Network)
}

// buildProvider wires the node provider for the network and, when an
// address book is configured, name resolution on top of it.
func buildProvider(network networks.Network, u ui.UI) (resolver.Provider, error) {
	p := resolver.Provider(provider.NewNodeProvider(network.Nodes()))
	if config.AddressBookPath == "" {
		return p, nil
	}
	book, err := addrbook.LoadBook(config.AddressBookPath)
	if err != nil {
		return nil, err
	}
	if book.Len() >= indexThreshold {
		indexed, err := addrbook.NewIndexedBook(book)
		if err != nil {
			u.Warn("couldn't index address book, falling back to fuzzy matching: %s", err)
			return provider.WithBook(p, book), nil
		}
		return provider.WithBook(p, indexed), nil
	}
	return provider.WithBook(p, book), nil
}

// cachedRegistry wraps the explorer client with the on-disk ABI string
// cache so repeat lookups skip the network.
type cachedRegistry struct {
	explorer *registry.Etherscan
}

func (c cachedRegistry) LoadABI(ctx context.Context, address string) (abi.ABI, error) {
	cacheKey := fmt.Sprintf("%s_abi", address)
	if !config.NoCache {
		if cached, found := cache.GetCache(cacheKey); found {
			return registry.FromJSON([]byte(cached))
		}
	}
	abiStr, err := c.explorer.GetABIString(ctx, address)
	if err != nil {
		return nil, err
	}
	if abiStr == "" {
		return abi.ABI{}, nil
	}
	result, err := registry.FromJSON([]byte(abiStr))
	if err != nil {
		return nil, err
	}
	if !config.NoCache {
		cache.SetCache(cacheKey, abiStr)
	}
	return result, nil
}

// buildResolveConfig assembles the full capability set for one resolution
// request, honoring the disable flags and routing progress/errors to the UI.
func buildResolveConfig(network networks.Network, u ui.UI) (resolver.Config, error) {
	p, err := buildProvider(network, u)
	if err != nil {
		return resolver.Config{}, err
	}
	cfg := resolver.Config{
		Provider:                   p,
		EnableExperimentalMetadata: config.Experimental,
		OnProgress: func(phase string, detail any) {
			switch phase {
			case "resolveName":
				u.Busy(fmt.Sprintf("resolving name %v", detail))
			case "abiLoader":
				u.Busy(fmt.Sprintf("looking up %v in verified registries", detail))
			case "getCode":
				u.Busy(fmt.Sprintf("fetching bytecode of %v", detail))
			case "signatureLookup":
				u.Busy(fmt.Sprintf("enriching %v entries from signature databases", detail))
			}
		},
		OnError: func(phase string, err error) bool {
			if config.Verbose {
				u.Warn("%s failed: %s", phase, err)
			}
			return false
		},
	}
	if !config.NoRegistry {
		cfg.ABILoader = cachedRegistry{explorer: network.Explorer()}
	}
	if !config.NoSigDB {
		cfg.SignatureLookup = sigdb.Chain{
			sigdb.NewOpenChain(),
			sigdb.NewFourByte(),
		}
	}
	return cfg, nil
}

func printABI(u ui.UI, result abi.ABI) error {
	if config.JSONOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	functions := result.Functions()
	events := result.Events()

	if len(result) == 0 {
		u.Warn("nothing found for this address")
		return nil
	}

	if len(functions) > 0 {
		u.Section(fmt.Sprintf("Functions (%d)", len(functions)))
		rows := [][]string{{"selector", "signature", "mutability"}}
		for _, e := range functions {
			rows = append(rows, []string{e.Selector, entrySig(e), e.StateMutability})
		}
		u.Table(rows)
	}
	if len(events) > 0 {
		u.Section(fmt.Sprintf("Events (%d)", len(events)))
		rows := [][]string{{"topic", "signature"}}
		for _, e := range events {
			rows = append(rows, []string{e.Hash, entrySig(e)})
		}
		u.Table(rows)
	}
	for _, e := range result {
		if len(e.SigAlts) > 0 {
			u.Info("")
			u.Info("%s also matches:", e.ID())
			for _, alt := range e.SigAlts {
				u.Block(alt)
			}
		}
	}
	return nil
}

func entrySig(e *abi.Entry) string {
	if e.Sig != "" {
		return e.Sig
	}
	if e.Name != "" {
		return e.Name
	}
	return "(unknown)"
}
