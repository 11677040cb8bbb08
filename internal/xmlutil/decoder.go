// Package xmlutil builds xml decoders for rate sheets published in legacy single-byte charsets
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// NewDecoder returns a strict decoder for b that understands the charsets central banks publish in
func NewDecoder(b []byte) *xml.Decoder {
	decoder := xml.NewDecoder(bytes.NewReader(b))
	decoder.CharsetReader = CharsetReader

	return decoder
}

// CharsetReader converts input declared with charset to UTF-8
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	case "windows-1254", "cp1254":
		return charmap.Windows1254.NewDecoder().Reader(input), nil
	case "iso-8859-9", "latin5":
		return charmap.ISO8859_9.NewDecoder().Reader(input), nil
	}

	r, err := charset.NewReaderLabel(label, input)
	if err != nil {
		return nil, fmt.Errorf("charset %s is not defined: %w", label, err)
	}

	return r, nil
}
