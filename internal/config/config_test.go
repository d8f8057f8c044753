package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/multierr"

	"github.com/mariorollojr/power-density-variables/internal/audio"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New("")
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Config{
		IntervalSeconds: 30,
		InputDirectory:  ".",
		OutputPath:      "power_densities_results.csv",
		Extension:       ".wav",
		ChannelMode:     "first",
	}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `{
		"interval_seconds": 5,
		"input_directory": "`+filepath.ToSlash(dir)+`",
		"output_path": "`+filepath.ToSlash(filepath.Join(dir, "out.csv"))+`",
		"workers": 3,
		"channel_mode": "mix"
	}`)

	cfg := New(path)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IntervalSeconds != 5 || cfg.WorkerCount() != 3 || cfg.Mode() != audio.ChannelMix {
		t.Errorf("loaded %+v", cfg)
	}
	if cfg.Extension != DefaultExtension {
		t.Errorf("Extension = %q, want default %q", cfg.Extension, DefaultExtension)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadRestoresZeroValues(t *testing.T) {
	path := writeConfig(t, `{
		"interval_seconds": 0,
		"input_directory": "",
		"output_path": "",
		"extension": "",
		"channel_mode": ""
	}`)

	cfg := New(path)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := New(path)
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("zero values not defaulted (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if err := New(filepath.Join(t.TempDir(), "missing.json")).Load(); err == nil {
		t.Error("Load(missing) = nil, want error")
	}
	if err := New(writeConfig(t, "{not json")).Load(); err == nil {
		t.Error("Load(bad json) = nil, want error")
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	dir := t.TempDir()
	cfg := New("")
	cfg.IntervalSeconds = -1
	cfg.InputDirectory = filepath.Join(dir, "missing")
	cfg.OutputPath = filepath.Join(dir, "missing", "out.csv")
	cfg.Workers = -2
	cfg.ChannelMode = "surround"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate = nil, want errors")
	}

	errs := multierr.Errors(err)
	if len(errs) != 5 {
		t.Errorf("got %d errors, want 5: %v", len(errs), err)
	}
	for _, field := range []string{"interval_seconds", "input_directory", "output_path", "workers", "unknown channel mode"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestWorkerCountDefault(t *testing.T) {
	if got := New("").WorkerCount(); got != runtime.NumCPU() {
		t.Errorf("WorkerCount = %d, want %d", got, runtime.NumCPU())
	}
}
