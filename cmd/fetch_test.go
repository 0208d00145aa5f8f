package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
)

// chartServer serves a small CSV per month; months listed in htmlMonths
// answer with an HTML page instead
func chartServer(t *testing.T, htmlMonths ...string) (*httptest.Server, *[]string) {
	t.Helper()

	var mu sync.Mutex
	var requested []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /regional/global/daily/2020-MM-01/download
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 5 || parts[4] != "download" {
			http.NotFound(w, r)
			return
		}
		date := parts[3]

		mu.Lock()
		requested = append(requested, date)
		mu.Unlock()

		for _, m := range htmlMonths {
			if strings.HasPrefix(date, "2020-"+m) {
				w.Header().Set("Content-Type", "text/html")
				fmt.Fprint(w, "<html><head><title>Chart unavailable</title></head><body></body></html>")
				return
			}
		}

		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprintf(w, "Position,Track Name,Artist,Streams,URL\n1,Song %s,Artist,100,https://x/%s\n", date, date)
	}))
	t.Cleanup(server.Close)

	return server, &requested
}

func runRoot(t *testing.T, baseURL string, args ...string) error {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	previous := chartBaseURL
	chartBaseURL = baseURL
	t.Cleanup(func() { chartBaseURL = previous })

	configPathFlag = ""

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFetch_AllMonthsWritten(t *testing.T) {
	server, requested := chartServer(t)
	dir := filepath.Join(t.TempDir(), "charts")

	err := runRoot(t, server.URL+"/regional/global/daily/", "fetch", "-o", dir, "--keep-going=false", "--no-progress")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	if len(entries) != domain.MonthsPerYear {
		t.Fatalf("expected %d files, got %d", domain.MonthsPerYear, len(entries))
	}

	for month := 1; month <= domain.MonthsPerYear; month++ {
		date := domain.DateStamp(2020, month)
		data, err := os.ReadFile(filepath.Join(dir, "regional-global-daily-"+date+".csv"))
		if err != nil {
			t.Errorf("missing file for %s: %v", date, err)
			continue
		}
		want := fmt.Sprintf("Position,Track Name,Artist,Streams,URL\n1,Song %s,Artist,100,https://x/%s\n", date, date)
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", date, data, want)
		}
	}

	if len(*requested) != domain.MonthsPerYear || (*requested)[0] != "2020-01-01" || (*requested)[11] != "2020-12-01" {
		t.Errorf("unexpected request order: %v", *requested)
	}
}

func TestFetch_RerunIsIdempotent(t *testing.T) {
	server, _ := chartServer(t)
	dir := t.TempDir()
	base := server.URL + "/regional/global/daily/"

	if err := runRoot(t, base, "fetch", "-o", dir, "--keep-going=false", "--no-progress"); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	first, _ := os.ReadFile(filepath.Join(dir, "regional-global-daily-2020-06-01.csv"))

	if err := runRoot(t, base, "fetch", "-o", dir, "--keep-going=false", "--no-progress"); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	second, _ := os.ReadFile(filepath.Join(dir, "regional-global-daily-2020-06-01.csv"))

	if string(first) != string(second) {
		t.Errorf("rerun changed file content: %q vs %q", first, second)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != domain.MonthsPerYear {
		t.Errorf("expected %d files after rerun, got %d", domain.MonthsPerYear, len(entries))
	}
}

func TestFetch_HTMLBodyAbortsBatch(t *testing.T) {
	server, requested := chartServer(t, "05")
	dir := t.TempDir()

	err := runRoot(t, server.URL+"/regional/global/daily/", "fetch", "-o", dir, "--keep-going=false", "--no-progress")
	if err == nil {
		t.Fatal("expected fetch to fail")
	}
	if !strings.Contains(err.Error(), "Chart unavailable") {
		t.Errorf("error should carry the HTML page title, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 4 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only January through April on disk, got %v", names)
	}

	if _, err := os.Stat(filepath.Join(dir, "regional-global-daily-2020-05-01.csv")); !os.IsNotExist(err) {
		t.Error("failing month must not leave a file")
	}

	if len(*requested) != 5 {
		t.Errorf("expected the batch to stop after May, got requests %v", *requested)
	}
}

func TestFetch_KeepGoingReportsEveryFailure(t *testing.T) {
	server, requested := chartServer(t, "02", "11")
	dir := t.TempDir()

	err := runRoot(t, server.URL+"/regional/global/daily/", "fetch", "-o", dir, "--keep-going=true", "--no-progress")
	if err == nil {
		t.Fatal("expected fetch to report failures")
	}
	if !strings.Contains(err.Error(), "2 of 12 months failed") {
		t.Errorf("unexpected error: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 10 {
		t.Errorf("expected 10 files, got %d", len(entries))
	}
	if len(*requested) != domain.MonthsPerYear {
		t.Errorf("expected every month requested, got %d", len(*requested))
	}
}

func TestPlan_DoesNotFetch(t *testing.T) {
	server, requested := chartServer(t)

	if err := runRoot(t, server.URL+"/regional/global/daily/", "plan", "--urls"); err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	if len(*requested) != 0 {
		t.Errorf("plan must not contact the server, got %v", *requested)
	}
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartfetch", "config.yaml")

	if err := runRoot(t, domain.BaseURL, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "status_check: strict") {
		t.Errorf("unexpected config content:\n%s", data)
	}
}
