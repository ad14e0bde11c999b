package sigdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

const DefaultFourByteDomain = "https://www.4byte.directory"

// FourByte queries the 4byte.directory signature database. The API returns
// submissions newest-first; the oldest submission is almost always the
// legitimate one, so results are re-sorted by submission id ascending to
// keep the most-likely-first contract.
type FourByte struct {
	Domain string

	limiter *rate.Limiter
	client  *http.Client
}

func NewFourByte() *FourByte {
	return NewFourByteWithDomain(DefaultFourByteDomain)
}

func NewFourByteWithDomain(domain string) *FourByte {
	return &FourByte{
		Domain:  domain,
		limiter: rate.NewLimiter(3, 3),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (fb *FourByte) FunctionLookupAPIURL(selector string) string {
	return fmt.Sprintf("%s/api/v1/signatures/?hex_signature=%s", fb.Domain, selector)
}

func (fb *FourByte) EventLookupAPIURL(topicHash string) string {
	return fmt.Sprintf("%s/api/v1/event-signatures/?hex_signature=%s", fb.Domain, topicHash)
}

type fourbyteResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID            int    `json:"id"`
		TextSignature string `json:"text_signature"`
	} `json:"results"`
}

func (fb *FourByte) lookup(ctx context.Context, url string) ([]string, error) {
	if err := fb.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := fb.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	fbresp := fourbyteResponse{}
	if err = json.Unmarshal(body, &fbresp); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal 4byte response: %w", err)
	}
	sort.Slice(fbresp.Results, func(i, j int) bool {
		return fbresp.Results[i].ID < fbresp.Results[j].ID
	})
	result := []string{}
	for _, r := range fbresp.Results {
		result = append(result, r.TextSignature)
	}
	return result, nil
}

func (fb *FourByte) LoadFunctions(ctx context.Context, selector string) ([]string, error) {
	return fb.lookup(ctx, fb.FunctionLookupAPIURL(selector))
}

func (fb *FourByte) LoadEvents(ctx context.Context, topicHash string) ([]string, error) {
	return fb.lookup(ctx, fb.EventLookupAPIURL(topicHash))
}
