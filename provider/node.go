// Package provider implements the resolver's Provider capability on top of
// ordinary JSON-RPC nodes. Code fetches fan out to every configured node at
// once and the first successful answer wins; only when all nodes fail does
// the provider fail, with the per-node errors joined.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

type oneNode struct {
	nodeName  string
	nodeURL   string
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func newOneNode(name, url string) *oneNode {
	return &oneNode{
		nodeName: name,
		nodeURL:  url,
	}
}

func (n *oneNode) NodeName() string {
	return n.nodeName
}

// ethClientLazy dials on first use so constructing a provider never touches
// the network.
func (n *oneNode) ethClientLazy() (*ethclient.Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ethClient != nil {
		return n.ethClient, nil
	}
	client, err := rpc.Dial(n.nodeURL)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", n.nodeName, err)
	}
	n.client = client
	n.ethClient = ethclient.NewClient(client)
	return n.ethClient, nil
}

func (n *oneNode) GetCode(ctx context.Context, address string) ([]byte, error) {
	client, err := n.ethClientLazy()
	if err != nil {
		return nil, err
	}
	// nil block number means latest
	return client.CodeAt(ctx, common.HexToAddress(address), nil)
}
