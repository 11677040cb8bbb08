package cbr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/robotomize/kurlar/provider"
	"github.com/robotomize/kurlar/provider/httputil"
)

const hostname = "www.cbr.ru"

const (
	dailyPath = "/scripts/XML_daily.asp"
	// queryLayout is the DD/MM/YYYY form of date_req
	queryLayout = "02/01/2006"
)

var defaultDailyURL = url.URL{Scheme: "https", Host: hostname, Path: dailyPath}

var _ provider.Source = (*source)(nil)

type fetcher struct {
	u url.URL
	httputil.SourceHTTPClient
}

// NewSource returns the USD/RUB source of the Central Bank of the Russian Federation
func NewSource(client *http.Client) *source {
	return &source{
		client: fetcher{
			u:                defaultDailyURL,
			SourceHTTPClient: httputil.NewHTTPClient(client),
		},
	}
}

type source struct {
	client fetcher
}

func (s *source) Symbol() provider.Symbol {
	return provider.RUB
}

func (s *source) FetchRate(ctx context.Context, date provider.Date) (provider.ExchangeRate, error) {
	rate, err := s.fetchingPlan(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching plan: %w", err)
	}

	return rate, nil
}

// resource adds date_req for a set date, the zero date asks for the latest sheet
func (s *source) resource(date provider.Date) url.URL {
	u := s.client.u

	t, ok := date.Time()
	if !ok {
		return u
	}

	query := u.Query()
	query.Set("date_req", t.Format(queryLayout))
	u.RawQuery = query.Encode()

	return u
}

func (s *source) fetchingPlan(ctx context.Context, date provider.Date) (ExchangeRate, error) {
	u := s.resource(date)

	b, err := s.client.Get(ctx, u)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("%w: fetching %s: %w", provider.ErrTransport, u.String(), err)
	}

	rate, err := s.decode(b, date)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("decode: %w", err)
	}

	return rate, nil
}

func (s *source) decode(b []byte, date provider.Date) (ExchangeRate, error) {
	curs, err := decodeXML(b, provider.USD)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("decode xml: %w", err)
	}

	if !curs.found {
		return ExchangeRate{}, fmt.Errorf("%w: %s for %s", provider.ErrCurrencyNotFound, provider.USD, date)
	}

	rate, err := curs.valute.UnitRate()
	if err != nil {
		return ExchangeRate{}, err
	}

	t := curs.time
	if t.IsZero() {
		t, _ = date.OrToday().Time()
	}

	return ExchangeRate{time: t, rate: rate}, nil
}
