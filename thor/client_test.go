package thor

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

var testAddr = common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:      srv.URL,
		Timeout:      time.Second,
		TickInterval: time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestAccountQueries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/"+testAddr.Hex(), func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"balance":"0xde0b6b3a7640000","energy":"0x64","hasCode":false}`)
	})
	c := newTestClient(t, mux)

	balance, err := c.Accounts.Balance(context.Background(), testAddr)
	require.NoError(t, err)
	require.Zero(t, balance.Cmp(big.NewInt(1e18)))

	energy, err := c.Accounts.Energy(context.Background(), testAddr)
	require.NoError(t, err)
	require.Zero(t, energy.Cmp(big.NewInt(100)))
}

func TestInspectSendsClauses(t *testing.T) {
	var got inspectRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/*", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `[{"data":"0x01","reverted":false}]`)
	})
	c := newTestClient(t, mux)

	clause := NewClause(&testAddr, big.NewInt(5), []byte{0xab})
	results, err := c.Accounts.Inspect(context.Background(), []Clause{clause}, WithCaller(testAddr), WithGas(50_000))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, hexutil.Bytes{0x01}, results[0].Data)

	require.Len(t, got.Clauses, 1)
	require.Equal(t, testAddr, *got.Clauses[0].To)
	require.Equal(t, testAddr, *got.Caller)
	require.Equal(t, uint64(50_000), got.Gas)
}

func TestReceiptNilWhileUnmined(t *testing.T) {
	id := common.HexToHash("0x01")
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/"+id.Hex()+"/receipt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `null`)
	})
	c := newTestClient(t, mux)

	receipt, err := c.Transactions.Receipt(context.Background(), id)
	require.NoError(t, err)
	require.Nil(t, receipt)
}

func TestSendTransaction(t *testing.T) {
	id := common.HexToHash("0x02")
	var gotRaw hexutil.Bytes
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Raw hexutil.Bytes `json:"raw"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotRaw = req.Raw
		fmt.Fprintf(w, `{"id":%q}`, id.Hex())
	})
	c := newTestClient(t, mux)

	got, err := c.Transactions.Send(context.Background(), []byte{0xf8, 0x01})
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.Equal(t, hexutil.Bytes{0xf8, 0x01}, gotRaw)
}

func TestBlockNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `null`)
	})
	c := newTestClient(t, mux)

	_, err := c.Blocks.ByNumber(context.Background(), 99)
	require.ErrorContains(t, err, "not found")
}

func TestErrorCarriesStatusAndBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad revision", http.StatusBadRequest)
	})
	c := newTestClient(t, mux)

	_, err := c.Blocks.Best(context.Background())
	require.ErrorContains(t, err, "400")
	require.ErrorContains(t, err, "bad revision")
}

func TestFilterEventsForwardsWindow(t *testing.T) {
	var got EventFilter
	mux := http.NewServeMux()
	mux.HandleFunc("/logs/event", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `[{"address":"0x0000000000000000000000000000456e65726779","topics":[],"data":"0x","meta":{"blockNumber":7}}]`)
	})
	c := newTestClient(t, mux)

	filter := &EventFilter{Order: "asc"}
	rows, err := c.Logs.FilterEvents(context.Background(), filter, 40, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint32(7), rows[0].Meta.BlockNumber)

	require.NotNil(t, got.Options)
	require.Equal(t, uint64(40), got.Options.Offset)
	require.Equal(t, uint64(20), got.Options.Limit)
	require.Equal(t, "asc", got.Order)

	// The caller's filter is not mutated by the per-step window.
	require.Nil(t, filter.Options)
}

func TestFilterTransfersNilFilter(t *testing.T) {
	var got TransferFilter
	mux := http.NewServeMux()
	mux.HandleFunc("/logs/transfer", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `[]`)
	})
	c := newTestClient(t, mux)

	rows, err := c.Logs.FilterTransfers(context.Background(), nil, 0, 10)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.Equal(t, uint64(10), got.Options.Limit)
}

func TestTickerWaitsForNewBlock(t *testing.T) {
	var calls atomic.Uint32
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/best", func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		// The head stays put for two polls, then advances.
		num := uint32(100)
		if n > 3 {
			num = 101
		}
		fmt.Fprintf(w, `{"number":%d,"id":"0x%064x"}`, num, num)
	})
	c := newTestClient(t, mux)

	ticker := c.Blocks.Ticker()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, ticker.Next(ctx))
	require.GreaterOrEqual(t, calls.Load(), uint32(4))

	// A second tick needs a further append; with the head parked at 101 the
	// context runs out instead.
	short, cancelShort := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelShort()
	require.ErrorIs(t, ticker.Next(short), context.DeadlineExceeded)
}

func TestChainTagCached(t *testing.T) {
	var calls atomic.Uint32
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/0", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"number":0,"id":"0x00000000851caf3cfdb6e899cf5958bfb1ac3413d346d43539627e6be7ec1b4a"}`)
	})
	c := newTestClient(t, mux)

	tag, err := c.ChainTag(context.Background())
	require.NoError(t, err)
	require.Equal(t, byte(0x4a), tag)

	tag, err = c.ChainTag(context.Background())
	require.NoError(t, err)
	require.Equal(t, byte(0x4a), tag)
	require.Equal(t, uint32(1), calls.Load())
}
