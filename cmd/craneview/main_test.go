package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig creates a sqlite-backed config in a temp dir and returns
// its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "craneview.db")
	cfgPath := filepath.Join(dir, "craneview.yaml")
	cfg := fmt.Sprintf("port_name: test-port\ndatabase:\n  driver: sqlite\n  path: %s\n", dbPath)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

// runCmd executes the root command with args and returns its combined output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "craneview dev") {
		t.Errorf("output = %q, want to contain %q", out, "craneview dev")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"version", "db", "serve", "lift", "delay", "shift", "rate", "vehicle", "watch", "digest"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestDBInit(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCmd(t, "db", "init", "-c", cfgPath)
	if err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "initialized successfully") {
		t.Errorf("output = %q, want success message", out)
	}
}

func TestDBSeed(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	out, err := runCmd(t, "db", "seed", "-c", cfgPath)
	if err != nil {
		t.Fatalf("db seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Amira Hassan") || !strings.Contains(out, "Demo data seeded.") {
		t.Errorf("output = %q, want seeded operators", out)
	}
}

func TestLiftCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}

	out, err := runCmd(t, "lift", "-c", cfgPath,
		"--operator", "op-1", "--date", "2025-06-06", "--hour", "08:00", "--count", "26")
	if err != nil {
		t.Fatalf("lift: %v\n%s", err, out)
	}
	if !strings.Contains(out, "target met") {
		t.Errorf("output = %q, want target met", out)
	}
}

func TestLiftCmd_RejectsBadCount(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}

	_, err := runCmd(t, "lift", "-c", cfgPath,
		"--operator", "op-1", "--hour", "08:00", "--count", "500")
	if err == nil {
		t.Fatal("expected error for count over cap")
	}
	if !strings.Contains(err.Error(), "liftsCount") {
		t.Errorf("error = %v, want liftsCount validation", err)
	}
}

func TestDelayCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}

	out, err := runCmd(t, "delay", "-c", cfgPath,
		"--operator", "op-1", "--date", "2025-06-06",
		"--start", "10:00", "--end", "10:35", "--reason", "crane_malfunction")
	if err != nil {
		t.Fatalf("delay: %v\n%s", err, out)
	}
	if !strings.Contains(out, "35m Crane Malfunction") {
		t.Errorf("output = %q, want 35m Crane Malfunction", out)
	}
}

func TestRateCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}

	if out, err := runCmd(t, "rate", "-c", cfgPath,
		"--operator", "op-1", "--rating", "4", "--date", "2025-06-06"); err != nil {
		t.Fatalf("rate: %v\n%s", err, out)
	}
	out, err := runCmd(t, "rate", "-c", cfgPath,
		"--operator", "op-1", "--rating", "5", "--date", "2025-06-07")
	if err != nil {
		t.Fatalf("rate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Rated op-1 5/5") || !strings.Contains(out, "Average: 4.5 over 2 ratings") {
		t.Errorf("output = %q, want rating and running average", out)
	}
}

func TestVehicleCmds(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}

	out, err := runCmd(t, "vehicle", "add", "-c", cfgPath, "--number", "TRK-100", "--type", "Truck")
	if err != nil {
		t.Fatalf("vehicle add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Registered TRK-100") {
		t.Errorf("output = %q, want registration", out)
	}

	out, err = runCmd(t, "vehicle", "list", "-c", cfgPath)
	if err != nil {
		t.Fatalf("vehicle list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "TRK-100") || !strings.Contains(out, "Available") {
		t.Errorf("output = %q, want listed vehicle", out)
	}
}

func TestDigestCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}
	if out, err := runCmd(t, "lift", "-c", cfgPath,
		"--operator", "op-1", "--date", "2025-06-06", "--hour", "08:00", "--count", "30"); err != nil {
		t.Fatalf("lift: %v\n%s", err, out)
	}

	out, err := runCmd(t, "digest", "-c", cfgPath, "--date", "2025-06-06")
	if err != nil {
		t.Fatalf("digest: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Fleet Digest") || !strings.Contains(out, "30 total") {
		t.Errorf("output = %q, want digest body", out)
	}
}

func TestDigestCmd_QuietDay(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if out, err := runCmd(t, "db", "init", "-c", cfgPath); err != nil {
		t.Fatalf("db init: %v\n%s", err, out)
	}

	out, err := runCmd(t, "digest", "-c", cfgPath, "--date", "2025-06-06")
	if err != nil {
		t.Fatalf("digest: %v\n%s", err, out)
	}
	if !strings.Contains(out, "nothing to post") {
		t.Errorf("output = %q, want quiet-day message", out)
	}
}

func TestPreviousDate(t *testing.T) {
	if got := previousDate("2025-06-07"); got != "2025-06-06" {
		t.Errorf("previousDate = %q, want 2025-06-06", got)
	}
	if got := previousDate("bad"); got != "" {
		t.Errorf("previousDate(bad) = %q, want empty", got)
	}
}
