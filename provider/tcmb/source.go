package tcmb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/robotomize/kurlar/provider"
	"github.com/robotomize/kurlar/provider/httputil"
)

const hostname = "www.tcmb.gov.tr"

const (
	basePath      = "/kurlar"
	todayFileName = "today.xml"
	// sheetLayout produces <YYYYMM>/<DDMMYYYY>
	sheetLayout = "200601/02012006"
)

var defaultBaseURL = url.URL{Scheme: "https", Host: hostname, Path: basePath}

var _ provider.Source = (*source)(nil)

type fetcher struct {
	baseURL url.URL
	httputil.SourceHTTPClient
}

// NewSource returns the USD/TRY ForexSelling source of the Central Bank of the Republic of Türkiye
func NewSource(client *http.Client) *source {
	return &source{
		client: fetcher{
			baseURL:          defaultBaseURL,
			SourceHTTPClient: httputil.NewHTTPClient(client),
		},
	}
}

type source struct {
	client fetcher
}

func (s *source) Symbol() provider.Symbol {
	return provider.TRY
}

func (s *source) FetchRate(ctx context.Context, date provider.Date) (provider.ExchangeRate, error) {
	rate, err := s.fetchingPlan(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching plan: %w", err)
	}

	return rate, nil
}

// resource returns .../kurlar/today.xml for the zero date, .../kurlar/<YYYYMM>/<DDMMYYYY>.xml otherwise
func (s *source) resource(date provider.Date) url.URL {
	u := s.client.baseURL

	t, ok := date.Time()
	if !ok {
		u.Path = path.Join(u.Path, todayFileName)
		return u
	}

	u.Path = path.Join(u.Path, t.Format(sheetLayout)+".xml")

	return u
}

func (s *source) fetchingPlan(ctx context.Context, date provider.Date) (ExchangeRate, error) {
	u := s.resource(date)

	b, err := s.client.Get(ctx, u)
	if err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound && !date.IsZero() {
			return ExchangeRate{}, fmt.Errorf(
				"%w: %w: no rate sheet published for %s: %w", provider.ErrTransport, provider.ErrCurrencyNotFound, date, err,
			)
		}

		return ExchangeRate{}, fmt.Errorf("%w: fetching %s: %w", provider.ErrTransport, u.String(), err)
	}

	rate, err := s.decode(b, date)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("decode: %w", err)
	}

	return rate, nil
}

func (s *source) decode(b []byte, date provider.Date) (ExchangeRate, error) {
	sheet, err := decodeXML(b, provider.USD)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("decode xml: %w", err)
	}

	if !sheet.found {
		return ExchangeRate{}, fmt.Errorf(
			"%w: %s for %s, it may be a weekend or a holiday", provider.ErrCurrencyNotFound, provider.USD, date,
		)
	}

	rate, err := sheet.currency.SellRate()
	if err != nil {
		return ExchangeRate{}, err
	}

	t := sheet.time
	if t.IsZero() {
		t, _ = date.OrToday().Time()
	}

	return ExchangeRate{time: t, rate: rate}, nil
}
