// Package networks declares the chains abiscope ships support for: default
// RPC nodes, block times and the explorer registry endpoint for each. Custom
// nodes and explorer API keys come from per-network env vars.
package networks

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tranvictor/abiscope/registry"
)

type Network struct {
	Name              string
	AlternativeNames  []string
	ChainID           uint64
	NativeTokenSymbol string
	BlockTime         time.Duration

	NodeVariableName string
	DefaultNodes     map[string]string

	BlockExplorerAPIKeyVariableName string
	BlockExplorerAPIURL             string
	DefaultBlockExplorerAPIKey      string
}

// Nodes returns the network's RPC endpoints, with a custom node from the
// network's env var taking part when set.
func (n Network) Nodes() map[string]string {
	nodes := map[string]string{}
	for name, url := range n.DefaultNodes {
		nodes[name] = url
	}
	customNode := strings.Trim(os.Getenv(n.NodeVariableName), " ")
	if customNode != "" {
		nodes["custom-node"] = customNode
	}
	return nodes
}

// Explorer builds the network's verified-ABI registry client. The API key
// env var overrides the shipped default key.
func (n Network) Explorer() *registry.Etherscan {
	apiKey := strings.Trim(os.Getenv(n.BlockExplorerAPIKeyVariableName), " ")
	if apiKey == "" {
		apiKey = n.DefaultBlockExplorerAPIKey
	}
	return registry.NewEtherscan(n.BlockExplorerAPIURL, n.ChainID, apiKey)
}

var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	BSCMainnet,
	Polygon,
}

func SupportedNetworks() []Network {
	return supportedNetworks
}

func SupportedNetworkNames() []string {
	names := []string{}
	for _, n := range supportedNetworks {
		names = append(names, n.Name)
	}
	return names
}

// GetNetwork looks a network up by its name or any of its alternative
// names.
func GetNetwork(name string) (Network, error) {
	name = strings.ToLower(strings.Trim(name, " "))
	for _, n := range supportedNetworks {
		if n.Name == name {
			return n, nil
		}
		for _, alt := range n.AlternativeNames {
			if alt == name {
				return n, nil
			}
		}
	}
	return Network{}, fmt.Errorf(
		"'%s' is not supported. Valid values are: %s",
		name,
		strings.Join(SupportedNetworkNames(), ", "),
	)
}
