package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mariorollojr/power-density-variables/internal/types"
)

func TestWriteHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := buf.String(), "Audio File,Interval,Average Power Density,Peak Power Density\r\n"; got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestWriteRows(t *testing.T) {
	results := []types.FileResult{
		{
			Path: "/in/one.wav",
			Analysis: &types.FileAnalysisResult{
				File: "one.wav",
				Windows: []types.PowerWindow{
					{Index: 0, AveragePower: 0.25, PeakPower: 1},
					{Index: 1, AveragePower: 0, PeakPower: 0},
				},
			},
		},
		{Path: "/in/broken.wav", Err: errors.New("decode error")},
		{
			Path: "/in/two, with comma.wav",
			Analysis: &types.FileAnalysisResult{
				File:    "two, with comma.wav",
				Windows: []types.PowerWindow{{Index: 0, AveragePower: 1e-7, PeakPower: 0.5}},
			},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, results); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}
	want := [][]string{
		Header,
		{"one.wav", "1", "0.25", "1"},
		{"one.wav", "2", "0", "0"},
		{"two, with comma.wav", "1", "1e-07", "0.5"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("report rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("Audio File,")) {
		t.Errorf("report starts with %q", data)
	}

	if err := WriteFile(filepath.Join(dir, "missing", "out.csv"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WriteFile(missing dir) error = %v, want os.ErrNotExist", err)
	}
}
