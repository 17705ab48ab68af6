package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// buildTestEntries places a few realistic scenarios with the default style.
func buildTestEntries() []Entry {
	prefs := model.DefaultPreferences()
	container := model.NewRect(0, 0, 600, 600)
	content := model.Size{Width: 80, Height: 20}

	scenarios := []struct {
		label string
		ref   model.Rect
		dir   model.Direction
	}{
		{"Centred", model.NewRect(250, 250, 100, 100), model.DirectionTop},
		{"Bottom edge", model.NewRect(0, 500, 100, 100), model.DirectionTop},
		{"Right edge", model.NewRect(500, 250, 100, 100), model.DirectionLeft},
		{"Fills container", model.NewRect(0, 0, 600, 600), model.DirectionAuto},
	}

	var entries []Entry
	for _, s := range scenarios {
		req := engine.NewRequest(s.ref, container, content, prefs)
		req.PreferredDirection = s.dir
		entries = append(entries, Entry{Label: s.label, Request: req, Result: engine.Resolve(req)})
	}
	return entries
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "placements.pdf")

	err := ExportPDF(path, buildTestEntries(), model.DefaultPreferences().Drawing)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	// 4 scenario pages plus the summary should be a reasonable size
	if len(data) < 500 {
		t.Errorf("PDF file seems too small: %d bytes", len(data))
	}
}

func TestExportPDF_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, nil, model.DefaultPreferences().Drawing)
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty report")
	}
}

func TestExportPDF_OffsetContainerAndTranslucentStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offset.pdf")

	prefs := model.DefaultPreferences()
	prefs.Drawing.BackgroundColor = model.Color{R: 0x20, G: 0x40, B: 0x60, A: 0x80}
	prefs.Drawing.CornerRadius = 50

	req := engine.NewRequest(model.NewRect(120, 80, 30, 30), model.NewRect(100, 50, 200, 100), model.Size{Width: 40, Height: 12}, prefs)
	req.PreferredDirection = model.DirectionRight
	entries := []Entry{{Label: "Offset", Request: req, Result: engine.Resolve(req)}}

	if err := ExportPDF(path, entries, prefs.Drawing); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_LongSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.pdf")

	base := buildTestEntries()
	var entries []Entry
	for i := 0; i < 40; i++ {
		e := base[i%len(base)]
		e.Label = fmt.Sprintf("%s %d", e.Label, i)
		entries = append(entries, e)
	}

	if err := ExportPDF(path, entries, model.DefaultPreferences().Drawing); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestYesNo(t *testing.T) {
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Error("unexpected yes/no rendering")
	}
}
