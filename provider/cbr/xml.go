package cbr

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
	xmlRootElement   = "ValCurs"
	xmlValuteElement = "Valute"
	xmlDateAttr      = "Date"
)

var errNoRootElement = errors.New("document has no root element")

type valCurs struct {
	time   time.Time
	valute XMLValute
	found  bool
}

// decodeXML parses xml in streaming mode and looks up the first Valute whose CharCode equals symbol
func decodeXML(b []byte, symbol provider.Symbol) (valCurs, error) {
	var curs valCurs
	var hasRoot bool

	decoder := xmlutil.NewDecoder(b)

TokenLoop:
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break TokenLoop
			}

			return valCurs{}, decodeErr(err)
		}

		tp, ok := token.(xml.StartElement)
		if !ok {
			continue TokenLoop
		}

		if !hasRoot {
			hasRoot = true
			if tp.Name.Local == xmlRootElement {
				curs.time = cursTime(tp.Attr)
			}
		}

		if tp.Name.Local != xmlValuteElement || curs.found {
			continue TokenLoop
		}

		// CharCode is a child element, so every Valute is decoded before the code is compared
		var node XMLValute
		if err := decoder.DecodeElement(&node, &tp); err != nil {
			return valCurs{}, decodeErr(err)
		}

		if strings.TrimSpace(node.CharCode) == symbol.String() {
			curs.valute = node
			curs.found = true
		}
	}

	if !hasRoot {
		return valCurs{}, fmt.Errorf("%w: %v", provider.ErrDecode, errNoRootElement)
	}

	return curs, nil
}

func decodeErr(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: %v", provider.ErrDecode, syntaxErr.Error())
	}

	return fmt.Errorf("%w: decode token: %v", provider.ErrDecode, err)
}

func cursTime(attrs []xml.Attr) time.Time {
	for _, attr := range attrs {
		if attr.Name.Local != xmlDateAttr {
			continue
		}

		t, err := time.Parse(provider.DateLayout, attr.Value)
		if err != nil {
			return time.Time{}
		}

		return t
	}

	return time.Time{}
}

type XMLValute struct {
	ID       string `xml:"ID,attr"`
	NumCode  string `xml:"NumCode"`
	CharCode string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Name     string `xml:"Name"`
	Value    string `xml:"Value"`
}

// UnitRate converts Value to the rate of a single unit of the currency
func (v XMLValute) UnitRate() (float64, error) {
	if strutil.IsBlank(v.Value) {
		return 0, fmt.Errorf("%w: %s Value is empty", provider.ErrMissingRate, v.CharCode)
	}

	value, err := strconv.ParseFloat(strutil.NormalizeDecimal(v.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s Value %q: %v", provider.ErrConversion, v.CharCode, v.Value, err)
	}

	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %s Value %q is not positive", provider.ErrConversion, v.CharCode, v.Value)
	}

	return value / float64(v.nominal()), nil
}

func (v XMLValute) nominal() int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Nominal))
	if err != nil || n <= 0 {
		return 1
	}

	return n
}
