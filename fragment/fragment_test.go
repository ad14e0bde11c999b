package fragment_test

import (
	"reflect"
	"testing"

	"github.com/tranvictor/abiscope/abi"
	"github.com/tranvictor/abiscope/fragment"
)

func TestSelectorOfWellKnownSignatures(t *testing.T) {
	cases := map[string]string{
		"transfer(address,uint256)":             "0xa9059cbb",
		"balanceOf(address)":                    "0x70a08231",
		"name()":                                "0x06fdde03",
		"transferFrom(address,address,uint256)": "0x23b872dd",
	}
	for sig, want := range cases {
		if got := fragment.Selector(sig); got != want {
			t.Errorf("Selector(%q): want %s, got %s", sig, want, got)
		}
	}
}

func TestEventTopicOfWellKnownSignatures(t *testing.T) {
	cases := map[string]string{
		"Transfer(address,address,uint256)": "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		"Approval(address,address,uint256)": "0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925",
	}
	for sig, want := range cases {
		if got := fragment.EventTopic(sig); got != want {
			t.Errorf("EventTopic(%q): want %s, got %s", sig, want, got)
		}
	}
}

func TestParseFunctionPlain(t *testing.T) {
	e, err := fragment.ParseFunction("transfer(address,uint256)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := &abi.Entry{
		Type:     abi.Function,
		Name:     "transfer",
		Selector: "0xa9059cbb",
		Inputs:   []abi.Param{{Type: "address"}, {Type: "uint256"}},
	}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("want %+v, got %+v", want, e)
	}
}

func TestParseFunctionNoArgs(t *testing.T) {
	e, err := fragment.ParseFunction("name()")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if e.Selector != "0x06fdde03" || len(e.Inputs) != 0 {
		t.Errorf("got %+v", e)
	}
}

func TestParseFunctionWithNamesAndModifiers(t *testing.T) {
	e, err := fragment.ParseFunction("transfer(address to, uint256 value) returns (bool)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	wantInputs := []abi.Param{{Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}}
	if !reflect.DeepEqual(e.Inputs, wantInputs) {
		t.Errorf("inputs: want %+v, got %+v", wantInputs, e.Inputs)
	}
	if !reflect.DeepEqual(e.Outputs, []abi.Param{{Type: "bool"}}) {
		t.Errorf("outputs: got %+v", e.Outputs)
	}
	// names must not leak into the canonical form
	if e.Selector != "0xa9059cbb" {
		t.Errorf("selector: want 0xa9059cbb, got %s", e.Selector)
	}
}

func TestParseFunctionMutability(t *testing.T) {
	e, err := fragment.ParseFunction("balanceOf(address) view returns (uint256)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if e.StateMutability != "view" || e.Payable {
		t.Errorf("got %+v", e)
	}

	e, err = fragment.ParseFunction("deposit() payable")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if e.StateMutability != "payable" || !e.Payable {
		t.Errorf("got %+v", e)
	}

	// legacy spelling
	e, err = fragment.ParseFunction("totalSupply() constant returns (uint256)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if e.StateMutability != "view" {
		t.Errorf("constant must normalize to view, got %+v", e)
	}
}

func TestParseFunctionTupleArgs(t *testing.T) {
	e, err := fragment.ParseFunction("swap((address,uint96)[],bytes)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	wantInputs := []abi.Param{{Type: "(address,uint96)[]"}, {Type: "bytes"}}
	if !reflect.DeepEqual(e.Inputs, wantInputs) {
		t.Errorf("tuple types must survive splitting, got %+v", e.Inputs)
	}
}

func TestParseEvent(t *testing.T) {
	e, err := fragment.ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if e.Type != abi.Event || e.Name != "Transfer" {
		t.Errorf("got %+v", e)
	}
	if e.Hash != "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef" {
		t.Errorf("indexed markers must not change the canonical form, got %s", e.Hash)
	}
	wantInputs := []abi.Param{
		{Name: "from", Type: "address"},
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
	}
	if !reflect.DeepEqual(e.Inputs, wantInputs) {
		t.Errorf("inputs: want %+v, got %+v", wantInputs, e.Inputs)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, bad := range []string{
		"",
		"noparens",
		"(uint256)",
		"transfer(address,uint256",
		"transfer(address,uint256) wat",
	} {
		if _, err := fragment.ParseFunction(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	e, err := fragment.ParseFunction("transfer(address to, uint256 value)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := fragment.Canonical(e.Name, e.Inputs); got != "transfer(address,uint256)" {
		t.Errorf("want canonical form back, got %q", got)
	}
}
