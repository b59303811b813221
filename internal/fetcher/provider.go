package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"spotwatch/internal/model"
	"spotwatch/internal/transport"
)

const (
	simplePricePath = "/simple/price"
	marketChartPath = "/coins/%s/market_chart"
)

// ProviderOptions parameterise the market-data provider client.
type ProviderOptions struct {
	BaseURL string
}

// Provider reads the two public JSON endpoints of the market-data
// provider through the fallback-capable transport resolver.
type Provider struct {
	opts     ProviderOptions
	resolver *transport.Resolver
	logger   zerolog.Logger
	baseURL  string
}

// NewProvider constructs a provider client.
func NewProvider(opts ProviderOptions, resolver *transport.Resolver, logger zerolog.Logger) *Provider {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}

	return &Provider{
		opts:     opts,
		resolver: resolver,
		logger:   logger.With().Str("component", "provider").Logger(),
		baseURL:  baseURL,
	}
}

// FetchSnapshot retrieves current prices for all requested currencies.
// The returned snapshot replaces any previous one wholesale.
func (p *Provider) FetchSnapshot(ctx context.Context, source model.Source, currencies []model.Currency) (model.PriceSnapshot, error) {
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		codes = append(codes, strings.ToLower(c.Code))
	}
	sort.Strings(codes)

	query := url.Values{}
	query.Set("ids", source.ID)
	query.Set("vs_currencies", strings.Join(codes, ","))
	query.Set("include_24hr_change", "true")
	query.Set("include_24hr_vol", "true")
	query.Set("include_last_updated_at", "true")

	endpoint := p.baseURL + simplePricePath + "?" + query.Encode()

	body, err := p.resolver.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload map[string]map[string]json.Number
	if err := unmarshalNumbers(body, &payload); err != nil {
		p.logger.Debug().Err(err).Msg("snapshot payload not parseable")
		return nil, &transport.NetworkError{URL: endpoint}
	}

	entry, ok := payload[source.ID]
	if !ok {
		return nil, fmt.Errorf("source %q: %w", source.ID, ErrMissingKey)
	}

	lastUpdated := time.Time{}
	if raw, ok := entry["last_updated_at"]; ok {
		if secs, err := raw.Int64(); err == nil {
			lastUpdated = time.Unix(secs, 0).UTC()
		}
	}

	snapshot := make(model.PriceSnapshot, len(codes))
	for _, code := range codes {
		raw, ok := entry[code]
		if !ok {
			p.logger.Debug().Str("currency", code).Msg("currency missing from snapshot response")
			continue
		}
		price, err := decimal.NewFromString(raw.String())
		if err != nil {
			continue
		}
		snapshot[code] = model.Quote{
			Price:         price,
			Change24h:     numberField(entry, code+"_24h_change"),
			Volume24h:     numberField(entry, code+"_24h_vol"),
			LastUpdatedAt: lastUpdated,
		}
	}

	if len(snapshot) == 0 {
		return nil, fmt.Errorf("source %q has no currency entries: %w", source.ID, ErrMissingKey)
	}

	return snapshot, nil
}

// FetchHistory retrieves the raw price series for the requested window.
func (p *Provider) FetchHistory(ctx context.Context, source model.Source, currency model.Currency, days int) (model.ChartHistory, error) {
	query := url.Values{}
	query.Set("vs_currency", strings.ToLower(currency.Code))
	query.Set("days", fmt.Sprintf("%d", days))

	endpoint := p.baseURL + fmt.Sprintf(marketChartPath, url.PathEscape(source.ID)) + "?" + query.Encode()

	body, err := p.resolver.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Prices [][]json.Number `json:"prices"`
	}
	if err := unmarshalNumbers(body, &payload); err != nil {
		p.logger.Debug().Err(err).Msg("history payload not parseable")
		return nil, &transport.NetworkError{URL: endpoint}
	}

	history := make(model.ChartHistory, 0, len(payload.Prices))
	for _, pair := range payload.Prices {
		if len(pair) < 2 {
			continue
		}
		ts, err := pair[0].Int64()
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(pair[1].String())
		if err != nil {
			continue
		}
		history = append(history, model.ChartPoint{TimestampMs: ts, Price: price})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].TimestampMs < history[j].TimestampMs
	})

	return history, nil
}

func numberField(entry map[string]json.Number, key string) decimal.Decimal {
	raw, ok := entry[key]
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func unmarshalNumbers(body []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(target)
}

var _ SnapshotFetcher = (*Provider)(nil)
var _ HistoryFetcher = (*Provider)(nil)
