package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/kurlar"
	"github.com/robotomize/kurlar/internal/logging"
	"github.com/robotomize/kurlar/provider"
)

const sourceNameBoth = "both"

var flagKurlar = flag.NewFlagSet("kurlar", flag.ContinueOnError)

var (
	date    = flagKurlar.String("date", "", "rate sheet date in DD.MM.YYYY form, today if empty")
	source  = flagKurlar.String("source", kurlar.SourceNameTCMB, "rate source, variants: tcmb, cbr, both")
	timeout = flagKurlar.Duration("timeout", kurlar.DefaultRequestTimeout, "timeout of a single rate sheet request")
	verbose = flagKurlar.Bool("v", false, "log every request")
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = logging.WithLogger(ctx, logging.NewLogger("Kurlar: ", log.Lmsgprefix))
	logger := logging.FromContext(ctx)

	if err := flagKurlar.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Fatalf("flag parse: %v", err)
	}

	if err := realMain(ctx, os.Stdout, *source, *date, *timeout, *verbose); err != nil {
		var multiErr *multierror.Error
		if errors.As(err, &multiErr) {
			for _, wrErr := range multiErr.WrappedErrors() {
				logger.Print(explain(wrErr))
			}
			os.Exit(1)
		}

		logger.Fatal(explain(err))
	}
}

func realMain(ctx context.Context, w io.Writer, source, date string, timeout time.Duration, verbose bool) error {
	opts := []kurlar.Option{kurlar.WithRequestTimeout(timeout)}
	if verbose {
		opts = append(opts, kurlar.WithLogger(logging.FromContext(ctx)))
	}

	client := kurlar.New(nil, opts...)

	if source == sourceNameBoth {
		rates, err := client.FetchAll(ctx, date)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "USD/TRY %v\n", rates.USDTRY)
		fmt.Fprintf(w, "USD/RUB %v\n", rates.USDRUB)

		return nil
	}

	rate, err := client.Fetch(ctx, source, date)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, rate)

	return nil
}

// explain prefixes err with a hint chosen by its kind
func explain(err error) string {
	switch {
	case errors.Is(err, provider.ErrDateFormat):
		return fmt.Sprintf("use -date DD.MM.YYYY: %v", err)
	case errors.Is(err, provider.ErrCurrencyNotFound):
		return fmt.Sprintf("no USD rate published, it may be a weekend or a holiday: %v", err)
	case errors.Is(err, kurlar.ErrSourceNotFound):
		return fmt.Sprintf("use -source tcmb, cbr or both: %v", err)
	default:
		return err.Error()
	}
}
