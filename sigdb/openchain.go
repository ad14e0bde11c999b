// Package sigdb looks selectors and topic hashes up in public signature
// databases, mapping them back to candidate human-readable signature text.
// Databases answer most-likely first; an empty answer means "unknown", never
// a failure. Nothing here is verified; a database hit only says someone,
// somewhere, registered a signature with that hash.
package sigdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const DefaultOpenChainDomain = "https://api.openchain.xyz"

// OpenChain queries the openchain.xyz signature database. Its lookup
// endpoint serves both functions and events and pre-filters junk
// submissions server-side.
type OpenChain struct {
	Domain string

	limiter *rate.Limiter
	client  *http.Client
}

func NewOpenChain() *OpenChain {
	return NewOpenChainWithDomain(DefaultOpenChainDomain)
}

func NewOpenChainWithDomain(domain string) *OpenChain {
	return &OpenChain{
		Domain:  domain,
		limiter: rate.NewLimiter(5, 5),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (oc *OpenChain) LookupAPIURL(kind, id string) string {
	return fmt.Sprintf(
		"%s/signature-database/v1/lookup?%s=%s&filter=true",
		oc.Domain, kind, id,
	)
}

type openchainHit struct {
	Name     string `json:"name"`
	Filtered bool   `json:"filtered"`
}

type openchainResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		Function map[string][]openchainHit `json:"function"`
		Event    map[string][]openchainHit `json:"event"`
	} `json:"result"`
}

func (oc *OpenChain) lookup(ctx context.Context, kind, id string) ([]string, error) {
	if err := oc.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	url := oc.LookupAPIURL(kind, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := oc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	ocresp := openchainResponse{}
	if err = json.Unmarshal(body, &ocresp); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal openchain response: %w", err)
	}
	if !ocresp.OK {
		return nil, fmt.Errorf("error from %s looking up %s", oc.Domain, id)
	}
	hits := ocresp.Result.Function[id]
	if kind == "event" {
		hits = ocresp.Result.Event[id]
	}
	result := []string{}
	for _, hit := range hits {
		if hit.Filtered {
			continue
		}
		result = append(result, hit.Name)
	}
	return result, nil
}

func (oc *OpenChain) LoadFunctions(ctx context.Context, selector string) ([]string, error) {
	return oc.lookup(ctx, "function", selector)
}

func (oc *OpenChain) LoadEvents(ctx context.Context, topicHash string) ([]string, error) {
	return oc.lookup(ctx, "event", topicHash)
}
