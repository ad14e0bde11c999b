// Package registry loads verified, human-curated ABIs from block-explorer
// registries. A registry answer is the most trustworthy source the resolver
// has, so a non-empty result short-circuits every other stage.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/time/rate"

	"github.com/tranvictor/abiscope/abi"
)

// etherscan free tier allows 5 req/s
const requestsPerSecond = 5

type Etherscan struct {
	Domain  string
	APIKey  string
	ChainID uint64

	limiter *rate.Limiter
	client  *http.Client
}

func NewEtherscan(domain string, chainID uint64, apiKey string) *Etherscan {
	return &Etherscan{
		Domain:  domain,
		APIKey:  apiKey,
		ChainID: chainID,
		limiter: rate.NewLimiter(requestsPerSecond, requestsPerSecond),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (ee *Etherscan) GetABIStringAPIURL(address string) string {
	return fmt.Sprintf(
		"%s/api?chainid=%d&module=contract&action=getabi&address=%s&apikey=%s",
		ee.Domain,
		ee.ChainID,
		address,
		ee.APIKey,
	)
}

type abiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (ar *abiResponse) IsOK() bool {
	return ar.Status == "1"
}

// isUnverified matches the etherscan answer for contracts with no verified
// source. That outcome means "no known entries", not a registry failure.
func (ar *abiResponse) isUnverified() bool {
	return strings.Contains(ar.Result, "not verified") ||
		strings.Contains(ar.Message, "not verified")
}

// GetABIString fetches the verified ABI JSON for address, or an empty string
// when the contract has no verified source.
func (ee *Etherscan) GetABIString(ctx context.Context, address string) (string, error) {
	if err := ee.limiter.Wait(ctx); err != nil {
		return "", err
	}
	url := ee.GetABIStringAPIURL(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := ee.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	abiresp := abiResponse{}
	err = json.Unmarshal(body, &abiresp)
	if err != nil {
		return "", fmt.Errorf("couldn't unmarshal %s response: %w", ee.Domain, err)
	}
	if !abiresp.IsOK() {
		if abiresp.isUnverified() {
			return "", nil
		}
		return "", fmt.Errorf("error from %s: %s", ee.Domain, abiresp.Message)
	}
	return abiresp.Result, nil
}

// LoadABI implements the resolver's ABILoader capability. An unverified
// contract yields an empty ABI and a nil error so the resolver falls through
// to bytecode inspection.
func (ee *Etherscan) LoadABI(ctx context.Context, address string) (abi.ABI, error) {
	abiStr, err := ee.GetABIString(ctx, address)
	if err != nil {
		return nil, err
	}
	if abiStr == "" {
		return abi.ABI{}, nil
	}
	// go-ethereum's parser is the strictness gate: anything it rejects is
	// not an ABI we want to hand downstream
	if _, err := ethabi.JSON(strings.NewReader(abiStr)); err != nil {
		return nil, fmt.Errorf("%s returned unparsable ABI for %s: %w", ee.Domain, address, err)
	}
	return FromJSON([]byte(abiStr))
}
