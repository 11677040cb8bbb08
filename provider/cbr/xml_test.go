package cbr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/robotomize/kurlar/provider"
	"golang.org/x/text/encoding/charmap"
)

const testValCurs = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="25.12.2025" name="Foreign Currency Market">
    <Valute ID="R01010">
        <NumCode>036</NumCode>
        <CharCode>AUD</CharCode>
        <Nominal>1</Nominal>
        <Name>Австралийский доллар</Name>
        <Value>52,7654</Value>
    </Valute>
    <Valute ID="R01235">
        <NumCode>840</NumCode>
        <CharCode>USD</CharCode>
        <Nominal>1</Nominal>
        <Name>Доллар США</Name>
        <Value>78,9615</Value>
    </Valute>
    <Valute ID="R01820">
        <NumCode>392</NumCode>
        <CharCode>JPY</CharCode>
        <Nominal>100</Nominal>
        <Name>Японских иен</Name>
        <Value>50,5316</Value>
    </Valute>
</ValCurs>`

func encodeWindows1251(t *testing.T, s string) []byte {
	t.Helper()

	b, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode windows-1251: %v", err)
	}

	return b
}

func TestDataMatchingDecodeXML(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		symbol   provider.Symbol
		expected struct {
			Date  string
			Name  string
			Value string
			Rate  float64
		}
	}{
		{
			name:   "test_usd",
			symbol: provider.USD,
			expected: struct {
				Date  string
				Name  string
				Value string
				Rate  float64
			}{
				Date:  "25.12.2025",
				Name:  "Доллар США",
				Value: "78,9615",
				Rate:  78.9615,
			},
		},
		{
			name:   "test_nominal_100",
			symbol: provider.Symbol("JPY"),
			expected: struct {
				Date  string
				Name  string
				Value string
				Rate  float64
			}{
				Date:  "25.12.2025",
				Name:  "Японских иен",
				Value: "50,5316",
				Rate:  0.505316,
			},
		},
	}

	b := encodeWindows1251(t, testValCurs)

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			curs, err := decodeXML(b, tc.symbol)
			if err != nil {
				t.Fatalf("decoding XML: %v", err)
			}

			if !curs.found {
				t.Fatalf("can not find symbol %s in result set", tc.symbol)
			}

			if diff := cmp.Diff(tc.expected.Date, curs.time.Format(provider.DateLayout)); diff != "" {
				t.Errorf("bad date (-want, +got): %s", diff)
			}

			if diff := cmp.Diff(tc.expected.Name, curs.valute.Name); diff != "" {
				t.Errorf("bad name (-want, +got): %s", diff)
			}

			if diff := cmp.Diff(tc.expected.Value, curs.valute.Value); diff != "" {
				t.Errorf("bad value (-want, +got): %s", diff)
			}

			rate, err := curs.valute.UnitRate()
			if err != nil {
				t.Fatalf("unit rate: %v", err)
			}

			if diff := cmp.Diff(tc.expected.Rate, rate, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("bad rate (-want, +got): %s", diff)
			}
		})
	}
}

func TestXMLMarkupDecodeXML(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		err   error
		found bool
		bytes []byte
	}{
		{
			name:  "test_unknown_attr_field",
			found: true,
			bytes: []byte(`<ValCurs Date="30.07.1996" name="Foreign Currency Market">
	<Valute ID="R01235" time="2017-01-02" weather="sunny">
	       <NumCode>840</NumCode>
	       <Num>840</Num>
	       <CharCode>USD</CharCode>
	       <Nominal>1</Nominal>
	       <Value>5,1609</Value>
	   </Valute>
	</ValCurs>`),
		},
		{
			name: "test_unknown_symbol",
			bytes: []byte(`<ValCurs Date="30.07.1996" name="Foreign Currency Market">
	<Valute ID="R01010">
	       <CharCode>USDT</CharCode>
	       <Nominal>1</Nominal>
	       <Value>54,1609</Value>
	   </Valute>
	</ValCurs>`),
		},
		{
			name:  "test_error_in_parameters",
			bytes: []byte(`<ValCurs>Error in parameters</ValCurs>`),
		},
		{
			name: "test_invalid_syntax_0",
			err:  provider.ErrDecode,
			bytes: []byte(`<ValCurs Date="30.07.1996" name="Foreign Currency Market">
	<Valute ID="R01235">
	       <CharCode>USD</CharCode>
	       <Value>54,1609</Value>
	   </Valute
	</ValCurs>`),
		},
		{
			name: "test_invalid_syntax_1",
			err:  provider.ErrDecode,
			bytes: []byte(`<ValCurs Date="30.07.1996" name="Foreign Currency Market">
	<Valute ID="R01235">
	       <CharCode>USD</CharCode>
	       <Value>54,1609</Value>
	   </Valute>`),
		},
		{
			name:  "test_empty_body",
			err:   provider.ErrDecode,
			bytes: []byte(``),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			curs, err := decodeXML(tc.bytes, provider.USD)

			if !errors.Is(err, tc.err) {
				diff := cmp.Diff(tc.err, err, cmpopts.EquateErrors())
				t.Fatalf("mismatch (-want, +got):\n%s", diff)
			}

			if diff := cmp.Diff(tc.found, curs.found); diff != "" {
				t.Errorf("bad found (-want, +got): %s", diff)
			}

			if err != nil && (!curs.time.IsZero() || curs.valute != (XMLValute{})) {
				t.Errorf("decode error must come with an empty result, got: %+v", curs)
			}
		})
	}
}

func TestXMLValute_UnitRate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		valute   XMLValute
		expected float64
		err      error
	}{
		{
			name:     "test_missing_nominal",
			valute:   XMLValute{CharCode: "USD", Value: "78,9615"},
			expected: 78.9615,
		},
		{
			name:     "test_invalid_nominal",
			valute:   XMLValute{CharCode: "USD", Nominal: "one", Value: "78,9615"},
			expected: 78.9615,
		},
		{
			name:     "test_nominal_10",
			valute:   XMLValute{CharCode: "HKD", Nominal: "10", Value: "101,5"},
			expected: 10.15,
		},
		{
			name:   "test_empty_value",
			valute: XMLValute{CharCode: "USD", Nominal: "1", Value: " "},
			err:    provider.ErrMissingRate,
		},
		{
			name:   "test_inner_space",
			valute: XMLValute{CharCode: "USD", Nominal: "1", Value: "78 9615"},
			err:    provider.ErrConversion,
		},
		{
			name:   "test_two_commas",
			valute: XMLValute{CharCode: "USD", Nominal: "1", Value: "78,96,15"},
			err:    provider.ErrConversion,
		},
		{
			name:     "test_surrounding_space",
			valute:   XMLValute{CharCode: "USD", Nominal: "1", Value: "\n 78,9615 \n"},
			expected: 78.9615,
		},
		{
			name:   "test_value_type",
			valute: XMLValute{CharCode: "USD", Nominal: "1", Value: "hello world"},
			err:    provider.ErrConversion,
		},
		{
			name:   "test_invalid_rate",
			valute: XMLValute{CharCode: "USD", Nominal: "1", Value: "-1"},
			err:    provider.ErrConversion,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, err := tc.valute.UnitRate()
			if !errors.Is(err, tc.err) {
				diff := cmp.Diff(tc.err, err, cmpopts.EquateErrors())
				t.Fatalf("mismatch (-want, +got):\n%s", diff)
			}

			if diff := cmp.Diff(tc.expected, v, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}
