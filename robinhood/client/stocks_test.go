package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinbot/gohood/robinhood/types"
)

func TestGetQuotes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointQuotes, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL,MSFT", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"results":[
			{"symbol":"AAPL","ask_price":"200.00","bid_price":"199.50","last_trade_price":"199.80"},
			{"symbol":"MSFT","ask_price":"410.10","bid_price":"409.90","last_trade_price":"410.00"}
		]}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	quotes, err := c.GetQuotes(context.Background(), []string{"AAPL", "MSFT"}, nil)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.True(t, quotes[0].AskPrice.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, quotes[1].BidPrice.Equal(decimal.RequireFromString("409.90")))
}

func TestExclusiveSecurityParams(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())
	authenticate(c)
	ctx := context.Background()

	// 都不传
	_, err := c.GetQuotes(ctx, nil, nil)
	require.ErrorIs(t, err, errExclusiveParams)

	// 都传
	_, err = c.GetFundamentals(ctx, []string{"AAPL"}, []string{"https://api.example.com/instruments/x/"})
	require.ErrorIs(t, err, errExclusiveParams)

	_, err = c.GetInstruments(ctx, "AAPL", []string{"ef10a"}, 1)
	require.Error(t, err)
}

func TestGetHistoricalQuotes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointHistoricals, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "AAPL", q.Get("symbols"))
		assert.Equal(t, "5minute", q.Get("interval"))
		assert.Equal(t, "day", q.Get("span"))
		assert.Equal(t, "extended", q.Get("bounds"))
		_, _ = w.Write([]byte(`{"results":[{"symbol":"AAPL","historicals":[
			{"begins_at":"2026-08-31T13:30:00Z","open_price":"199.00","close_price":"199.40","volume":12000}
		]}]}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	hist, err := c.GetHistoricalQuotes(context.Background(),
		types.IntervalFiveMin, types.SpanDay, true, []string{"AAPL"}, nil)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Len(t, hist[0].Candles, 1)
	assert.True(t, hist[0].Candles[0].ClosePrice.Equal(decimal.RequireFromString("199.40")))
}

func TestGetRatings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointRatings, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ef10a,bc22d", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{"results":[
			{"instrument_id":"ef10a","summary":{"num_buy_ratings":20,"num_hold_ratings":5,"num_sell_ratings":1}}
		]}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	ratings, err := c.GetRatings(context.Background(), []string{"ef10a", "bc22d"}, 1)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 20, ratings[0].Summary.NumBuyRatings)
}

func TestGetTagsAndMembers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(EndpointTags+"instrument/ef10a/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tags":[{"slug":"technology"},{"slug":"100-most-popular"}]}`))
	})
	mux.HandleFunc(EndpointTags+"tag/technology/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"instruments":["https://api.example.com/instruments/ef10a/"]}`))
	})

	c, _ := newTestClient(t, mux)
	authenticate(c)

	tags, err := c.GetTags(context.Background(), "ef10a")
	require.NoError(t, err)
	assert.Equal(t, []string{"technology", "100-most-popular"}, tags)

	members, err := c.GetTagMembers(context.Background(), "technology")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.example.com/instruments/ef10a/"}, members)
}
