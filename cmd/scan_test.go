package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// runRoot executes the root command with the given args and captures stdout
// plus any exit codes requested through exitFunc.
func runRoot(t *testing.T, args ...string) (string, []int) {
	t.Helper()

	var exits []int
	origExit := exitFunc
	exitFunc = func(code int) { exits = append(exits, code) }
	defer func() { exitFunc = origExit }()

	viper.Reset()
	defer viper.Reset()
	viper.Set("cache.dir", t.TempDir())

	// flag values persist across Execute calls, so re-arm the defaults
	scanNoCache = false
	scanJSON = false
	urlJSON = false
	urlAllowPrivate = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return buf.String(), exits
}

func TestScanCommandVulnerableProject(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"dependencies": {"react-server-dom-webpack": "19.0.0"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	out, exits := runRoot(t, "--quiet", "scan", "--path", dir, "--json", "--no-cache")

	var report scanReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("scan output is not valid JSON: %v\n%s", err, out)
	}
	if !report.VulnerabilitiesFound {
		t.Error("expected vulnerabilities_found to be true")
	}
	if len(exits) != 1 || exits[0] != 1 {
		t.Errorf("expected exit code 1 on findings, got %v", exits)
	}
}

func TestScanCommandSafeProject(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"dependencies": {"express": "4.18.0"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	out, exits := runRoot(t, "--quiet", "scan", "--path", dir, "--json", "--no-cache")

	var report scanReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("scan output is not valid JSON: %v\n%s", err, out)
	}
	if report.VulnerabilitiesFound {
		t.Error("expected no vulnerabilities")
	}
	if len(exits) != 0 {
		t.Errorf("expected no exit call on a clean scan, got %v", exits)
	}
}

func TestCacheClearCommand(t *testing.T) {
	out, exits := runRoot(t, "--quiet", "cache", "clear")

	if len(exits) != 0 {
		t.Errorf("expected clean exit, got %v", exits)
	}
	if out == "" {
		t.Error("expected confirmation message")
	}
}
