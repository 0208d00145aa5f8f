package domain

import (
	"fmt"
	"strings"
)

const (
	// Year is the chart year every batch covers
	Year = 2020

	// BaseURL is the chart endpoint every download URL is built from
	BaseURL = "https://spotifycharts.com/regional/global/daily/"

	// MonthsPerYear is the number of targets in one batch
	MonthsPerYear = 12

	FilenamePrefix = "regional-global-daily-"
	FilenameExt    = ".csv"

	downloadSuffix = "/download"
)

// Target describes a single monthly download: where it comes from and
// where it is written. URL and Filename are both built from Date.
type Target struct {
	Month    int    // 1..12
	Date     string // e.g., "2020-03-01"
	URL      string // e.g., "https://.../2020-03-01/download"
	Filename string // e.g., "regional-global-daily-2020-03-01.csv"
}

// MonthString returns the month zero-padded to two digits
// 1 -> "01", 12 -> "12"
func MonthString(month int) string {
	return fmt.Sprintf("%02d", month)
}

// DateStamp returns the first day of the given month as YYYY-MM-DD
func DateStamp(year, month int) string {
	return fmt.Sprintf("%d-%s-01", year, MonthString(month))
}

// BuildURL appends "<date>/download" to the base URL
func BuildURL(baseURL, date string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + date + downloadSuffix
}

// GenerateFilename creates the output file name for a date stamp
// Format: regional-global-daily-YYYY-MM-DD.csv
func GenerateFilename(date string) string {
	return FilenamePrefix + date + FilenameExt
}

// ParseFilename extracts the date stamp from an output file name
// "regional-global-daily-2020-01-01.csv" -> "2020-01-01"
func ParseFilename(filename string) (string, bool) {
	if !strings.HasPrefix(filename, FilenamePrefix) || !strings.HasSuffix(filename, FilenameExt) {
		return "", false
	}
	date := strings.TrimSuffix(strings.TrimPrefix(filename, FilenamePrefix), FilenameExt)
	return date, date != ""
}

// ValidateMonth checks that a month index is within 1..12
func ValidateMonth(month int) error {
	if month < 1 || month > MonthsPerYear {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return nil
}

// NewTarget derives the target for one month. The date stamp is computed
// once and shared by the URL and the file name.
func NewTarget(baseURL string, year, month int) (Target, error) {
	if err := ValidateMonth(month); err != nil {
		return Target{}, err
	}

	date := DateStamp(year, month)

	return Target{
		Month:    month,
		Date:     date,
		URL:      BuildURL(baseURL, date),
		Filename: GenerateFilename(date),
	}, nil
}

// PlanYear returns the twelve targets of a year in ascending month order
func PlanYear(baseURL string, year int) []Target {
	targets := make([]Target, 0, MonthsPerYear)
	for month := 1; month <= MonthsPerYear; month++ {
		// month is always in range here
		t, _ := NewTarget(baseURL, year, month)
		targets = append(targets, t)
	}
	return targets
}

// String returns a short human-readable label
func (t Target) String() string {
	return fmt.Sprintf("%s -> %s", t.Date, t.Filename)
}
