package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/tranvictor/abiscope/resolver"
)

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

// NodeProvider reads the chain through one or more JSON-RPC nodes. It knows
// nothing about human-readable names; compose it with WithBook for that.
type NodeProvider struct {
	nodes map[string]*oneNode
}

// NewNodeProvider takes a name -> RPC URL map, the same shape the network
// definitions supply.
func NewNodeProvider(nodes map[string]string) *NodeProvider {
	ns := map[string]*oneNode{}
	for name, url := range nodes {
		ns[name] = newOneNode(name, url)
	}
	return &NodeProvider{nodes: ns}
}

type getCodeResponse struct {
	Code  []byte
	Error error
}

// GetCode fetches deployed bytecode from all nodes concurrently and returns
// the first success.
func (p *NodeProvider) GetCode(ctx context.Context, address string) ([]byte, error) {
	if len(p.nodes) == 0 {
		return nil, fmt.Errorf("no nodes configured")
	}
	resCh := make(chan getCodeResponse, len(p.nodes))
	for i := range p.nodes {
		n := p.nodes[i]
		go func() {
			code, err := n.GetCode(ctx, address)
			resCh <- getCodeResponse{
				Code:  code,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(p.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Code, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// ResolveName on a bare node provider always answers "unknown": plain
// JSON-RPC has no name service.
func (p *NodeProvider) ResolveName(ctx context.Context, name string) (string, error) {
	return "", nil
}

// Book is the name-resolution capability WithBook composes in. The addrbook
// package provides the production implementation and a map-backed test
// double.
type Book interface {
	Find(input string) (address string, err error)
}

// WithBook decorates a provider with name resolution from an address book.
// Lookups that miss degrade to "unknown" rather than failing, matching the
// resolver's fall-through contract.
func WithBook(p resolver.Provider, book Book) resolver.Provider {
	return &bookProvider{Provider: p, book: book}
}

type bookProvider struct {
	resolver.Provider
	book Book
}

func (bp *bookProvider) ResolveName(ctx context.Context, name string) (string, error) {
	addr, err := bp.book.Find(name)
	if err != nil {
		return bp.Provider.ResolveName(ctx, name)
	}
	return addr, nil
}
