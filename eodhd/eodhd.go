// Package eodhd fetches closing prices from the EOD Historical Data API
// (https://eodhd.com).
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/finmgr"
	"github.com/etnz/finmgr/date"
	"github.com/etnz/finmgr/market"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// APIKeyEnv is the environment variable holding the API key.
const APIKeyEnv = "EODHD_API_KEY"

const defaultBaseURL = "https://eodhd.com/api"

// Client queries the EODHD API. Responses are cached on disk for the day.
type Client struct {
	apiKey string
	base   string
	http   *http.Client
	log    zerolog.Logger
}

// NewClient returns a client authenticated with apiKey.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	log = log.With().Str("service", "eodhd").Logger()
	return &Client{
		apiKey: apiKey,
		base:   defaultBaseURL,
		http:   newDailyCachingClient(os.TempDir(), log),
		log:    log,
	}
}

// WithEndpoint returns a copy of c querying another base URL with another
// HTTP client.
func (c *Client) WithEndpoint(base string, client *http.Client) *Client {
	n := *c
	n.base = strings.TrimSuffix(base, "/")
	n.http = client
	return &n
}

// Ticker returns the EODHD ticker of a security: Canadian listings trade on
// the Toronto exchange, US listings on the virtual US exchange.
func Ticker(s finmgr.Security) string {
	switch s.Currency {
	case "CAD":
		return s.Symbol + ".TO"
	case "USD":
		return s.Symbol + ".US"
	}
	return s.Symbol
}

// Fetch returns the daily closes of a security over a range of days.
func (c *Client) Fetch(ctx context.Context, s finmgr.Security, r date.Range) (*market.Prices, error) {
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.base, url.PathEscape(Ticker(s)), url.QueryEscape(c.apiKey), r.From, r.To)
	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch %s closes: %w", Ticker(s), err)
	}

	prices := market.NewPrices()
	for _, info := range content {
		if r.Contains(info.Date) {
			prices.Set(s, info.Date, info.Close)
		}
	}
	c.log.Info().Str("ticker", Ticker(s)).Stringer("range", r).Int("closes", prices.Len()).Msg("fetched")
	return prices, nil
}

// LatestClose returns the latest close of a security and the day it was
// recorded on.
func (c *Client) LatestClose(ctx context.Context, s finmgr.Security) (finmgr.Money, date.Date, error) {
	// {"code":"XEQ.TO","timestamp":1710187200,"gmtoffset":0,"open":27.1,"high":27.5,"low":27.05,"close":27.45,...}
	addr := fmt.Sprintf("%s/real-time/%s?fmt=json&api_token=%s", c.base, url.PathEscape(Ticker(s)), url.QueryEscape(c.apiKey))
	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return finmgr.Money{}, date.Date{}, fmt.Errorf("cannot fetch %s quote: %w", Ticker(s), err)
	}

	closeValue, err := number(jobj, "$.close")
	if err != nil {
		return finmgr.Money{}, date.Date{}, fmt.Errorf("invalid %s quote: %w", Ticker(s), err)
	}
	timestamp, err := number(jobj, "$.timestamp")
	if err != nil {
		return finmgr.Money{}, date.Date{}, fmt.Errorf("invalid %s quote: %w", Ticker(s), err)
	}
	on := date.New(time.Unix(timestamp.IntPart(), 0).UTC().Date())
	return finmgr.M(closeValue, s.Currency), on, nil
}

// number reads a numeric value at a JSON path.
func number(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", path, err)
	}
	// jsonpath may return a list of one answer or the answer itself.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	}
	return decimal.Zero, fmt.Errorf("%s: not a number: %v", path, jval)
}

// Update fetches the closes missing from prices for every security over r.
// Securities that cannot be fetched are logged and skipped; the error lists
// them.
func (c *Client) Update(ctx context.Context, prices *market.Prices, securities []finmgr.Security, r date.Range) error {
	var failed []string
	for _, s := range securities {
		missing, ok := prices.Missing(s, r)
		if !ok {
			continue
		}
		fetched, err := c.Fetch(ctx, s, missing)
		if err != nil {
			c.log.Error().Err(err).Stringer("security", s).Msg("cannot update prices")
			failed = append(failed, Ticker(s))
			continue
		}
		prices.Merge(fetched)
	}
	if len(failed) > 0 {
		return fmt.Errorf("cannot update prices of %s", strings.Join(failed, ", "))
	}
	return nil
}
