package tcmb

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/robotomize/kurlar/internal/strutil"
	"github.com/robotomize/kurlar/internal/xmlutil"
	"github.com/robotomize/kurlar/provider"
)

const (
	xmlRootElement     = "Tarih_Date"
	xmlCurrencyElement = "Currency"
	xmlCurrencyAttr    = "CurrencyCode"
	xmlDateAttr        = "Tarih"
)

var errNoRootElement = errors.New("document has no root element")

// rateSheet is the part of the daily sheet the fetcher cares about. found reports whether
// a Currency element with the requested code was present
type rateSheet struct {
	time     time.Time
	currency XMLCurrency
	found    bool
}

// decodeXML parses xml in streaming mode and looks up the first Currency element whose
// CurrencyCode attribute equals symbol. The whole document is consumed so that malformed
// markup after the record is still reported
func decodeXML(b []byte, symbol provider.Symbol) (rateSheet, error) {
	var sheet rateSheet
	var hasRoot bool

	decoder := xmlutil.NewDecoder(b)

TokenLoop:
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break TokenLoop
			}

			return rateSheet{}, decodeErr(err)
		}

		tp, ok := token.(xml.StartElement)
		if !ok {
			continue TokenLoop
		}

		if !hasRoot {
			hasRoot = true
			if tp.Name.Local == xmlRootElement {
				sheet.time = sheetTime(tp.Attr)
			}
		}

		if tp.Name.Local != xmlCurrencyElement || sheet.found {
			continue TokenLoop
		}

		if attrValue(tp.Attr, xmlCurrencyAttr) != symbol.String() {
			if err := decoder.Skip(); err != nil {
				return rateSheet{}, decodeErr(err)
			}
			continue TokenLoop
		}

		// Decode a piece of the tree into an XMLCurrency element, which holds the quotes for the day
		if err := decoder.DecodeElement(&sheet.currency, &tp); err != nil {
			return rateSheet{}, decodeErr(err)
		}

		sheet.found = true
	}

	if !hasRoot {
		return rateSheet{}, fmt.Errorf("%w: %v", provider.ErrDecode, errNoRootElement)
	}

	return sheet, nil
}

func decodeErr(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: %v", provider.ErrDecode, syntaxErr.Error())
	}

	return fmt.Errorf("%w: decode token: %v", provider.ErrDecode, err)
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}

	return ""
}

// sheetTime reads the Tarih attribute, a zero time is returned if it is absent or not a date
func sheetTime(attrs []xml.Attr) time.Time {
	t, err := time.Parse(provider.DateLayout, attrValue(attrs, xmlDateAttr))
	if err != nil {
		return time.Time{}
	}

	return t
}

type XMLCurrency struct {
	Code            string `xml:"CurrencyCode,attr"`
	Unit            string `xml:"Unit"`
	Name            string `xml:"CurrencyName"`
	ForexBuying     string `xml:"ForexBuying"`
	ForexSelling    string `xml:"ForexSelling"`
	BanknoteBuying  string `xml:"BanknoteBuying"`
	BanknoteSelling string `xml:"BanknoteSelling"`
}

// SellRate converts ForexSelling to a positive number
func (c XMLCurrency) SellRate() (float64, error) {
	if strutil.IsBlank(c.ForexSelling) {
		return 0, fmt.Errorf("%w: %s ForexSelling is empty", provider.ErrMissingRate, c.Code)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(c.ForexSelling), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s ForexSelling %q: %v", provider.ErrConversion, c.Code, c.ForexSelling, err)
	}

	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s ForexSelling %q is not positive", provider.ErrConversion, c.Code, c.ForexSelling)
	}

	return v, nil
}
