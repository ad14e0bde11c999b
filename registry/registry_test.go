package registry_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/tranvictor/abiscope/abi"
	"github.com/tranvictor/abiscope/registry"
	"github.com/tranvictor/abiscope/resolver"
)

const erc20ABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer",
	 "inputs":[{"name":"from","type":"address","indexed":true},
	           {"name":"to","type":"address","indexed":true},
	           {"name":"value","type":"uint256"}]},
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]}
]`

func TestFromJSONPreservesOrderAndComputesIdentifiers(t *testing.T) {
	result, err := registry.FromJSON([]byte(erc20ABI))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// constructor carries no selector and is skipped
	if len(result) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result))
	}
	if result[0].Name != "balanceOf" || result[1].Name != "transfer" || result[2].Name != "Transfer" {
		t.Errorf("document order must be preserved, got %+v", result)
	}
	if result[0].Selector != "0x70a08231" {
		t.Errorf("balanceOf selector: got %s", result[0].Selector)
	}
	if result[1].Selector != "0xa9059cbb" {
		t.Errorf("transfer selector: got %s", result[1].Selector)
	}
	if result[2].Hash != "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef" {
		t.Errorf("Transfer topic: got %s", result[2].Hash)
	}
	if result[0].StateMutability != "view" || result[0].Sig != "balanceOf(address)" {
		t.Errorf("metadata lost: %+v", result[0])
	}
	if !reflect.DeepEqual(result[0].Outputs, []abi.Param{{Type: "uint256"}}) {
		t.Errorf("outputs lost: %+v", result[0].Outputs)
	}
}

func TestFromJSONLegacyMutabilityFlags(t *testing.T) {
	legacy := `[
		{"type":"function","name":"totalSupply","constant":true,"inputs":[],"outputs":[{"type":"uint256"}]},
		{"type":"function","name":"deposit","payable":true,"inputs":[],"outputs":[]}
	]`
	result, err := registry.FromJSON([]byte(legacy))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if result[0].StateMutability != "view" || result[0].Payable {
		t.Errorf("constant:true must map to view, got %+v", result[0])
	}
	if result[1].StateMutability != "payable" || !result[1].Payable {
		t.Errorf("payable:true must map to payable, got %+v", result[1])
	}
}

func TestFromJSONCanonicalizesTuples(t *testing.T) {
	withTuple := `[
		{"type":"function","name":"fillOrder","stateMutability":"nonpayable",
		 "inputs":[{"name":"order","type":"tuple","components":[
			{"name":"maker","type":"address"},
			{"name":"amounts","type":"uint256[]"}]},
		   {"name":"sig","type":"bytes"}],
		 "outputs":[]}
	]`
	result, err := registry.FromJSON([]byte(withTuple))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if result[0].Sig != "fillOrder((address,uint256[]),bytes)" {
		t.Errorf("tuple canonicalization: got %q", result[0].Sig)
	}
}

// fakeEtherscan serves the etherscan getabi envelope.
func fakeEtherscan(t *testing.T, status, message, result string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "getabi" {
			t.Errorf("unexpected action %q", r.URL.Query().Get("action"))
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":  status,
			"message": message,
			"result":  result,
		})
	}))
}

const addr = "0x63825c174ab367968EC60f061753D3bbD36A0D8F"

func TestEtherscanLoadABI(t *testing.T) {
	server := fakeEtherscan(t, "1", "OK", erc20ABI)
	defer server.Close()

	ee := registry.NewEtherscan(server.URL, 1, "testkey")
	result, err := ee.LoadABI(context.Background(), addr)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(result) != 3 {
		t.Errorf("expected 3 entries, got %+v", result)
	}
}

func TestEtherscanUnverifiedMeansEmpty(t *testing.T) {
	server := fakeEtherscan(t, "0", "NOTOK", "Contract source code not verified")
	defer server.Close()

	ee := registry.NewEtherscan(server.URL, 1, "testkey")
	result, err := ee.LoadABI(context.Background(), addr)
	if err != nil {
		t.Fatalf("unverified contracts are not a failure, got %s", err)
	}
	if len(result) != 0 {
		t.Errorf("expected an empty ABI, got %+v", result)
	}
}

func TestEtherscanErrorResponse(t *testing.T) {
	server := fakeEtherscan(t, "0", "NOTOK", "Max calls per sec rate limit reached")
	defer server.Close()

	ee := registry.NewEtherscan(server.URL, 1, "testkey")
	if _, err := ee.LoadABI(context.Background(), addr); err == nil {
		t.Fatal("expected an error for a NOTOK response")
	}
}

func TestEtherscanRejectsMalformedABI(t *testing.T) {
	server := fakeEtherscan(t, "1", "OK", `[{"type":"function"`)
	defer server.Close()

	ee := registry.NewEtherscan(server.URL, 1, "testkey")
	if _, err := ee.LoadABI(context.Background(), addr); err == nil {
		t.Fatal("expected an error for malformed ABI JSON")
	}
}

type stubLoader struct {
	result abi.ABI
	err    error
	calls  int
}

func (l *stubLoader) LoadABI(ctx context.Context, address string) (abi.ABI, error) {
	l.calls++
	return l.result, l.err
}

func TestChainFirstNonEmptyWins(t *testing.T) {
	empty := &stubLoader{result: abi.ABI{}}
	hit := &stubLoader{result: abi.ABI{{Type: abi.Function, Selector: "0xa9059cbb"}}}
	never := &stubLoader{}

	chain := registry.Chain{empty, hit, never}
	result, err := chain.LoadABI(context.Background(), addr)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(result) != 1 {
		t.Errorf("expected the hit's ABI, got %+v", result)
	}
	if never.calls != 0 {
		t.Errorf("loaders after a hit must not be called")
	}
}

func TestChainSkipsFailures(t *testing.T) {
	failing := &stubLoader{err: fmt.Errorf("down")}
	hit := &stubLoader{result: abi.ABI{{Type: abi.Function, Selector: "0xa9059cbb"}}}

	chain := registry.Chain{failing, hit}
	result, err := chain.LoadABI(context.Background(), addr)
	if err != nil {
		t.Fatalf("one failing registry must not fail the chain, got %s", err)
	}
	if len(result) != 1 {
		t.Errorf("expected the hit's ABI, got %+v", result)
	}
}

func TestChainAllFailing(t *testing.T) {
	chain := registry.Chain{
		&stubLoader{err: fmt.Errorf("down")},
		&stubLoader{err: fmt.Errorf("also down")},
	}
	if _, err := chain.LoadABI(context.Background(), addr); err == nil {
		t.Fatal("expected an error when every registry fails")
	}
}

var _ resolver.ABILoader = registry.Chain{}
