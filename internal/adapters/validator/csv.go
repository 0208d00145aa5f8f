package validator

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
)

// minColumns is the narrowest record accepted as tabular data.
// A single column would let plain-text error bodies through.
const minColumns = 2

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVValidator implements the Validator port for comma-separated files
type CSVValidator struct{}

// NewCSVValidator creates a new CSV validator
func NewCSVValidator() *CSVValidator {
	return &CSVValidator{}
}

// Validate reads the whole file and checks that it is consistent CSV.
// The parsed records are discarded; only their shape is reported.
func (v *CSVValidator) Validate(ctx context.Context, path string) (*domain.ParseReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.ErrEmptyArtifact
	}

	if isHTML(data) {
		return nil, fmt.Errorf("%w: received HTML page %q instead of CSV", domain.ErrNotTabular, pageTitle(data))
	}

	records, err := readRecords(ctx, data)
	if err != nil {
		return nil, err
	}

	return shape(records)
}

// readRecords parses every record, allowing a variable field count
// so a preamble line can be told apart from the header
func readRecords(ctx context.Context, data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		if len(records)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotTabular, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// shape locates the header and checks no record is wider than it.
// Shorter records are accepted; their missing trailing fields read as empty.
// Chart exports may start with a single note line above the header; that line is skipped.
func shape(records [][]string) (*domain.ParseReport, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyArtifact
	}

	headerIdx := 0
	if hasPreamble(records) {
		headerIdx = 1
	}

	header := records[headerIdx]
	if len(header) < minColumns {
		return nil, fmt.Errorf("%w: header has %d column(s)", domain.ErrNotTabular, len(header))
	}

	for i := headerIdx + 1; i < len(records); i++ {
		if len(records[i]) > len(header) {
			return nil, fmt.Errorf("%w: record %d has %d fields, header has %d",
				domain.ErrNotTabular, i+1, len(records[i]), len(header))
		}
	}

	return &domain.ParseReport{
		Header:  header,
		Columns: len(header),
		Rows:    len(records) - headerIdx - 1,
	}, nil
}

// hasPreamble reports a first line that is a note rather than the header:
// either a single cell or a row with one filled cell and an empty first cell
func hasPreamble(records [][]string) bool {
	if len(records) < 2 || len(records[1]) < minColumns {
		return false
	}
	return len(records[0]) == 1 || isNoteLine(records[0])
}

// isNoteLine reports a line carrying a single non-empty cell,
// e.g. `,,,"Note that these figures ...",`
func isNoteLine(record []string) bool {
	filled := 0
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			filled++
		}
	}
	return filled == 1 && strings.TrimSpace(record[0]) == ""
}

func isHTML(data []byte) bool {
	return strings.HasPrefix(http.DetectContentType(data), "text/html")
}

// pageTitle extracts a short description of an HTML error page
func pageTitle(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	return title
}
