package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/eslsoft/parlato/internal/entity"
)

func runCatalogExport(t *testing.T, level string) (*bytes.Buffer, error) {
	t.Helper()
	if err := catalogExportCmd.Flags().Set("level", level); err != nil {
		t.Fatalf("set level flag: %v", err)
	}
	t.Cleanup(func() { _ = catalogExportCmd.Flags().Set("level", "") })

	var out bytes.Buffer
	catalogExportCmd.SetOut(&out)
	return &out, catalogExportCmd.RunE(catalogExportCmd, nil)
}

func TestCatalogExportFiltersByLevel(t *testing.T) {
	out, err := runCatalogExport(t, "b1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var entries []entity.VerbEntry
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("B1 bucket is empty")
	}
	for _, entry := range entries {
		if entry.Level != entity.LevelB1 {
			t.Errorf("verb %q has level %s", entry.Infinitive, entry.Level)
		}
	}
}

func TestCatalogExportRejectsUnknownLevel(t *testing.T) {
	_, err := runCatalogExport(t, "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Fatalf("got %v, want unknown level error", err)
	}
}

func TestCatalogValidate(t *testing.T) {
	var out bytes.Buffer
	catalogValidateCmd.SetOut(&out)
	if err := catalogValidateCmd.RunE(catalogValidateCmd, nil); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "catalog ok") {
		t.Errorf("output: %q", out.String())
	}
}
