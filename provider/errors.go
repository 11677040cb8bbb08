package provider

import "errors"

// Each failure of a fetch wraps one kind below, so callers can branch with errors.Is.
// A 404 for a dated TCMB sheet is the exception: it wraps both ErrTransport and ErrCurrencyNotFound,
// since TCMB publishes no sheet on weekends and holidays.
var (
	// ErrDateFormat is returned when the date is not in DD.MM.YYYY form
	ErrDateFormat = errors.New("date is not in DD.MM.YYYY format")
	// ErrTransport is returned when the request fails or the status is not 200
	ErrTransport = errors.New("rate sheet request failed")
	// ErrDecode is returned when the rate sheet is not well-formed XML
	ErrDecode = errors.New("decoding of the markup failed")
	// ErrCurrencyNotFound is returned when no USD record was published, e.g. on weekends and holidays
	ErrCurrencyNotFound = errors.New("currency not found in rate sheet")
	// ErrMissingRate is returned when the USD record has no rate value
	ErrMissingRate = errors.New("rate value is not published")
	// ErrConversion is returned when the rate value is not a positive number
	ErrConversion = errors.New("rate value is not a valid number")
)
