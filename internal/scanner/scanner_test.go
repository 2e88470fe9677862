package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khanhnv2901/r2s-cli/internal/cache"
	"github.com/khanhnv2901/r2s-cli/internal/model"
)

func TestScanVulnerableProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {
			"react-server-dom-webpack": "19.0.0",
			"react": "19.1.0"
		}
	}`)

	got := findingSet(newTestScanner(Options{}).Scan(context.Background(), dir))

	want := findingSet([]model.Finding{
		{Package: "react-server-dom-webpack", Version: "19.0.0"},
		{Package: "react", Version: "19.1.0"},
	})
	if len(got) != len(want) {
		t.Fatalf("findings = %v, want exactly %v", got, want)
	}
	for f := range want {
		if _, ok := got[f]; !ok {
			t.Errorf("missing finding %v", f)
		}
	}
}

func TestScanSafeProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {"react": "18.2.0", "lodash": "4.17.21"}
	}`)

	got := newTestScanner(Options{}).Scan(context.Background(), dir)
	if got == nil {
		t.Fatal("Scan must never return nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty findings, got %v", got)
	}
}

func TestScanMonorepoSurfacesNestedFindings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"lodash": "4.17.21"}}`)
	writeFile(t, dir, "packages/vulnerable-app/package.json", `{
		"dependencies": {"react-server-dom-webpack": "19.0.0"}
	}`)

	got := findingSet(newTestScanner(Options{}).Scan(context.Background(), dir))

	if _, ok := got[model.Finding{Package: "react-server-dom-webpack", Version: "19.0.0"}]; !ok {
		t.Errorf("nested finding not surfaced in aggregate result: %v", got)
	}
}

func TestScanNodeModulesReactVersions(t *testing.T) {
	safe := t.TempDir()
	writeFile(t, safe, "node_modules/react/package.json", `{"version": "18.2.0"}`)
	got := findingSet(newTestScanner(Options{}).Scan(context.Background(), safe))
	if _, ok := got[model.Finding{Package: "react", Version: "18.2.0"}]; ok {
		t.Error("react 18.2.0 must not appear in findings")
	}

	vulnerable := t.TempDir()
	writeFile(t, vulnerable, "node_modules/react/package.json", `{"version": "19.0.0"}`)
	got = findingSet(newTestScanner(Options{}).Scan(context.Background(), vulnerable))
	if _, ok := got[model.Finding{Package: "react", Version: "19.0.0"}]; !ok {
		t.Errorf("react 19.0.0 must appear in findings, got %v", got)
	}
}

func TestScanNonexistentPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	got := newTestScanner(Options{}).Scan(context.Background(), missing)
	if got == nil || len(got) != 0 {
		t.Errorf("nonexistent path must yield an empty list, got %v", got)
	}
}

func TestScanDeduplicatesAcrossReaders(t *testing.T) {
	// The same pair reported by both the manifest and a lockfile appears once.
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {"react-server-dom-webpack": "19.0.0"}
	}`)
	writeFile(t, dir, "package-lock.json", `{
		"dependencies": {"react-server-dom-webpack": {"version": "19.0.0"}}
	}`)

	got := newTestScanner(Options{}).Scan(context.Background(), dir)

	count := 0
	for _, f := range got {
		if f == (model.Finding{Package: "react-server-dom-webpack", Version: "19.0.0"}) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("finding appears %d times, want 1: %v", count, got)
	}
}

func TestScanUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {"react-server-dom-webpack": "19.0.0"}
	}`)

	c := cache.New(t.TempDir(), time.Hour, nil)
	s := New(testMatcher(), c, nil, Options{UseCache: true})

	first := s.Scan(context.Background(), dir)
	if len(first) != 1 {
		t.Fatalf("first scan findings = %v", first)
	}

	// Remove the manifest; a cache hit must still return the old result.
	if err := os.Remove(filepath.Join(dir, "package.json")); err != nil {
		t.Fatal(err)
	}

	second := s.Scan(context.Background(), dir)
	if len(second) != 1 || second[0] != first[0] {
		t.Errorf("expected cached findings %v, got %v", first, second)
	}
}

func TestScanNoCacheSeesFreshState(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {"react-server-dom-webpack": "19.0.0"}
	}`)

	c := cache.New(t.TempDir(), time.Hour, nil)
	s := New(testMatcher(), c, nil, Options{UseCache: false})

	if got := s.Scan(context.Background(), dir); len(got) != 1 {
		t.Fatalf("first scan findings = %v", got)
	}

	if err := os.Remove(filepath.Join(dir, "package.json")); err != nil {
		t.Fatal(err)
	}

	if got := s.Scan(context.Background(), dir); len(got) != 0 {
		t.Errorf("cache disabled, expected fresh empty result, got %v", got)
	}
}

func TestScanCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {"react-server-dom-webpack": "19.0.0"}
	}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := newTestScanner(Options{}).Scan(ctx, dir)
	if got == nil {
		t.Fatal("Scan must never return nil")
	}
	if len(got) != 0 {
		t.Errorf("canceled context should skip dispatch, got %v", got)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
		"dependencies": {"react-server-dom-webpack": "19.0.0"}
	}`)

	c := cache.New(t.TempDir(), time.Hour, nil)
	s := New(testMatcher(), c, nil, Options{UseCache: true})

	s.Scan(context.Background(), dir)
	s.ClearCache()

	key := cache.Key(dir, testMatcher().Rules().Fingerprint())
	if _, ok := c.Get(key); ok {
		t.Error("Get after ClearCache must be absent")
	}
}
