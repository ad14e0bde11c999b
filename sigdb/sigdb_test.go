package sigdb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/tranvictor/abiscope/resolver"
	"github.com/tranvictor/abiscope/sigdb"
)

const (
	transferSelector = "0xa9059cbb"
	transferTopic    = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
)

func TestOpenChainFunctionLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != transferSelector {
			t.Errorf("unexpected function id %q", got)
		}
		fmt.Fprintf(w, `{"ok":true,"result":{"function":{"%s":[
			{"name":"transfer(address,uint256)","filtered":false},
			{"name":"many_msg_babbage(bytes1)","filtered":true},
			{"name":"func_2093253501(bytes)","filtered":false}
		]},"event":{}}}`, transferSelector)
	}))
	defer server.Close()

	oc := sigdb.NewOpenChainWithDomain(server.URL)
	hits, err := oc.LoadFunctions(context.Background(), transferSelector)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"transfer(address,uint256)", "func_2093253501(bytes)"}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("filtered hits must be dropped and order kept, got %v", hits)
	}
}

func TestOpenChainEventLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("event"); got != transferTopic {
			t.Errorf("unexpected event id %q", got)
		}
		fmt.Fprintf(w, `{"ok":true,"result":{"function":{},"event":{"%s":[
			{"name":"Transfer(address,address,uint256)","filtered":false}
		]}}}`, transferTopic)
	}))
	defer server.Close()

	oc := sigdb.NewOpenChainWithDomain(server.URL)
	hits, err := oc.LoadEvents(context.Background(), transferTopic)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(hits) != 1 || hits[0] != "Transfer(address,address,uint256)" {
		t.Errorf("got %v", hits)
	}
}

func TestOpenChainUnknownSelectorIsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true,"result":{"function":{},"event":{}}}`)
	}))
	defer server.Close()

	oc := sigdb.NewOpenChainWithDomain(server.URL)
	hits, err := oc.LoadFunctions(context.Background(), "0x6dbf2fa0")
	if err != nil {
		t.Fatalf("an unknown selector is not a failure, got %s", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestOpenChainNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false}`)
	}))
	defer server.Close()

	oc := sigdb.NewOpenChainWithDomain(server.URL)
	if _, err := oc.LoadFunctions(context.Background(), transferSelector); err == nil {
		t.Fatal("expected an error for a non-ok response")
	}
}

func TestFourByteSortsOldestFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/signatures/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		// the API answers newest-first
		fmt.Fprint(w, `{"count":2,"results":[
			{"id":999999,"text_signature":"gasprice_bit_ether(int128)"},
			{"id":145,"text_signature":"transfer(address,uint256)"}
		]}`)
	}))
	defer server.Close()

	fb := sigdb.NewFourByteWithDomain(server.URL)
	hits, err := fb.LoadFunctions(context.Background(), transferSelector)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"transfer(address,uint256)", "gasprice_bit_ether(int128)"}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("oldest submission must come first, got %v", hits)
	}
}

func TestFourByteEventLookupPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/event-signatures/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"count":1,"results":[
			{"id":7,"text_signature":"Transfer(address,address,uint256)"}
		]}`)
	}))
	defer server.Close()

	fb := sigdb.NewFourByteWithDomain(server.URL)
	hits, err := fb.LoadEvents(context.Background(), transferTopic)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(hits) != 1 || hits[0] != "Transfer(address,address,uint256)" {
		t.Errorf("got %v", hits)
	}
}

type stubLookup struct {
	hits  []string
	err   error
	calls int
}

func (l *stubLookup) LoadFunctions(ctx context.Context, selector string) ([]string, error) {
	l.calls++
	return l.hits, l.err
}

func (l *stubLookup) LoadEvents(ctx context.Context, topicHash string) ([]string, error) {
	l.calls++
	return l.hits, l.err
}

func TestChainFirstNonEmptyWins(t *testing.T) {
	empty := &stubLookup{hits: []string{}}
	hit := &stubLookup{hits: []string{"transfer(address,uint256)"}}
	never := &stubLookup{}

	chain := sigdb.Chain{empty, hit, never}
	hits, err := chain.LoadFunctions(context.Background(), transferSelector)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected the hit's answer, got %v", hits)
	}
	if never.calls != 0 {
		t.Errorf("databases after a hit must not be called")
	}
}

func TestChainSkipsFailures(t *testing.T) {
	failing := &stubLookup{err: fmt.Errorf("down")}
	hit := &stubLookup{hits: []string{"Transfer(address,address,uint256)"}}

	chain := sigdb.Chain{failing, hit}
	hits, err := chain.LoadEvents(context.Background(), transferTopic)
	if err != nil {
		t.Fatalf("one failing database must not fail the chain, got %s", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected the hit's answer, got %v", hits)
	}
}

func TestChainAllFailing(t *testing.T) {
	chain := sigdb.Chain{
		&stubLookup{err: fmt.Errorf("down")},
		&stubLookup{err: fmt.Errorf("also down")},
	}
	if _, err := chain.LoadFunctions(context.Background(), transferSelector); err == nil {
		t.Fatal("expected an error when every database fails")
	}
}

var _ resolver.SignatureLookup = sigdb.Chain{}
