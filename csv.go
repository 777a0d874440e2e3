package odf

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the default charset of CSV input, taken from $LANG.
var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	} else {
		EncName = ""
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

// GetEncoding returns the named encoding, or nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// CSVReader is a csv.Reader which closes the underlying file.
type CSVReader struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens fn ("" or "-" is stdin), decodes it from encName
// and guesses the field separator from the first line.
func OpenCsv(fn, encName string) (CSVReader, error) {
	enc, err := GetEncoding(encName)
	if err != nil {
		return CSVReader{}, err
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		if fh, err = os.Open(fn); err != nil {
			return CSVReader{}, err
		}
	}
	cr, err := NewCsvReader(fh, enc)
	if err != nil {
		fh.Close()
		return CSVReader{}, err
	}
	return CSVReader{Reader: cr, Closer: fh}, nil
}

// NewCsvReader returns a csv.Reader reading r decoded by enc (nil means UTF-8).
//
// The separator is the first character of the input which is not
// part of a word or a number.
func NewCsvReader(r io.Reader, enc encoding.Encoding) (*csv.Reader, error) {
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		return nil, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if strings.ContainsRune(`"_ .-+`, r) || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		if r != '\n' && r != '\r' {
			sep = r
		}
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	return cr, nil
}
