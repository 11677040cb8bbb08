// Package kurlar fetches the official USD exchange rate from the daily XML rate sheets of central banks.
//
// The primary source is the Central Bank of the Republic of Türkiye, whose ForexSelling quote is
// returned by USDTRY. The Central Bank of the Russian Federation is available through USDRUB.
//
//	rate, err := kurlar.USDTRY("25.12.2025")
//	if errors.Is(err, provider.ErrCurrencyNotFound) {
//		// weekend or holiday, no sheet was published
//	}
package kurlar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/kurlar/internal/logging"
	"github.com/robotomize/kurlar/provider"
	"github.com/robotomize/kurlar/provider/cbr"
	"github.com/robotomize/kurlar/provider/tcmb"
)

var ErrSourceNotFound = errors.New("source is not supported")

const DefaultRequestTimeout = 20 * time.Second

const (
	// SourceNameTCMB source name for the Central Bank of the Republic of Türkiye, USD/TRY
	SourceNameTCMB = "tcmb"
	// SourceNameCBR source name for the Russia central bank, USD/RUB
	SourceNameCBR = "cbr"
)

type Option func(*Client)

type Options struct {
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// WithRequestTimeout set a timeout for a single rate sheet request. A non-positive t keeps DefaultRequestTimeout
func WithRequestTimeout(t time.Duration) Option {
	return func(c *Client) {
		if t <= 0 {
			return
		}
		c.opts.RequestTimeout = t
	}
}

// WithLogger set the logger that reports every request. Nothing is logged by default
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.opts.Logger = logger
		}
	}
}

type Provider struct {
	name string
	provider.Source
}

// New return Client. A nil client means a preconfigured *http.Client
func New(client *http.Client, opts ...Option) *Client {
	c := &Client{
		opts: Options{
			RequestTimeout: DefaultRequestTimeout,
			Logger:         logging.NewDiscardLogger(),
		},
		providers: []*Provider{
			{
				name:   SourceNameTCMB,
				Source: tcmb.NewSource(client),
			},
			{
				name:   SourceNameCBR,
				Source: cbr.NewSource(client),
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Client is safe for concurrent use, it holds no state after New
type Client struct {
	opts      Options
	providers []*Provider
}

// Rates holds the quotes of every source for a single date
type Rates struct {
	// Date in DD.MM.YYYY form, today when no date was requested
	Date   string
	USDTRY float64
	USDRUB float64
}

func (r Rates) String() string {
	return fmt.Sprintf("Date: %s, USD/TRY: %f, USD/RUB: %f", r.Date, r.USDTRY, r.USDRUB)
}

// USDTRY returns the ForexSelling rate of the Central Bank of the Republic of Türkiye.
// date is DD.MM.YYYY or empty for today's sheet
func (c *Client) USDTRY(ctx context.Context, date string) (float64, error) {
	return c.Fetch(ctx, SourceNameTCMB, date)
}

// USDRUB returns the official rate of the Central Bank of the Russian Federation.
// date is DD.MM.YYYY or empty for the latest sheet
func (c *Client) USDRUB(ctx context.Context, date string) (float64, error) {
	return c.Fetch(ctx, SourceNameCBR, date)
}

// Fetch returns the USD rate published by the named source. The date is validated before any request is made
func (c *Client) Fetch(ctx context.Context, name, date string) (float64, error) {
	d, err := provider.ParseDate(date)
	if err != nil {
		return 0, err
	}

	source, err := c.lookup(name)
	if err != nil {
		return 0, err
	}

	rate, err := c.fetch(ctx, source, d)
	if err != nil {
		return 0, err
	}

	return rate.Rate(), nil
}

// FetchAll requests every source for the same date at once. If any source fails, the combined error is returned
func (c *Client) FetchAll(ctx context.Context, date string) (Rates, error) {
	d, err := provider.ParseDate(date)
	if err != nil {
		return Rates{}, err
	}

	rates := make([]provider.ExchangeRate, len(c.providers))

	var group multierror.Group
	for i, source := range c.providers {
		i, source := i, source
		group.Go(func() error {
			rate, err := c.fetch(ctx, source, d)
			if err != nil {
				return err
			}

			rates[i] = rate

			return nil
		})
	}

	if err := group.Wait().ErrorOrNil(); err != nil {
		return Rates{}, err
	}

	resp := Rates{Date: d.Format(provider.DateLayout)}
	for _, rate := range rates {
		switch rate.To() {
		case provider.TRY:
			resp.USDTRY = rate.Rate()
		case provider.RUB:
			resp.USDRUB = rate.Rate()
		}
	}

	return resp, nil
}

func (c *Client) lookup(name string) (*Provider, error) {
	for _, p := range c.providers {
		if p.name == name {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
}

func (c *Client) fetch(ctx context.Context, source *Provider, date provider.Date) (provider.ExchangeRate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	c.opts.Logger.Printf("fetching %s/%s rate from %s for %s", provider.USD, source.Symbol(), source.name, date)

	rate, err := source.FetchRate(ctx, date)
	if err != nil {
		c.opts.Logger.Printf("%s: %v", source.name, err)
		return nil, fmt.Errorf("%s fetch rate: %w", source.name, err)
	}

	return rate, nil
}

// USDTRY calls Client.USDTRY of a default client
func USDTRY(date string) (float64, error) {
	return New(nil).USDTRY(context.Background(), date)
}

// USDRUB calls Client.USDRUB of a default client
func USDRUB(date string) (float64, error) {
	return New(nil).USDRUB(context.Background(), date)
}

// FetchAll calls Client.FetchAll of a default client
func FetchAll(date string) (Rates, error) {
	return New(nil).FetchAll(context.Background(), date)
}
