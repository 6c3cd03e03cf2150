package backup

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eslsoft/parlato/internal/adapter/repository"
)

func TestNewServiceRequiresDatabase(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil database")
	}
}

func TestSelectSpecsDefaultsToAllTables(t *testing.T) {
	specs, err := selectSpecs(nil)
	if err != nil {
		t.Fatalf("selectSpecs: %v", err)
	}
	if len(specs) != len(tableSpecs) {
		t.Fatalf("got %d specs, want %d", len(specs), len(tableSpecs))
	}
}

func TestSelectSpecsFilters(t *testing.T) {
	name := repository.BrainRecord{}.TableName()
	specs, err := selectSpecs([]string{"  " + strings.ToUpper(name) + "  "})
	if err != nil {
		t.Fatalf("selectSpecs: %v", err)
	}
	if len(specs) != 1 || specs[0].name != name {
		t.Fatalf("got %+v, want only %s", specs, name)
	}
}

func TestSelectSpecsUnknownTable(t *testing.T) {
	if _, err := selectSpecs([]string{"payments"}); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestImportRejectsMissingHeader(t *testing.T) {
	svc := &Service{batchSize: defaultBatchSize}

	err := svc.Import(context.Background(), strings.NewReader(`{"kind":"row","table":"user_brains","data":{}}`))
	if !errors.Is(err, errMissingHeader) {
		t.Fatalf("got %v, want errMissingHeader", err)
	}
}

func TestImportRejectsEmptyArchive(t *testing.T) {
	svc := &Service{batchSize: defaultBatchSize}

	err := svc.Import(context.Background(), strings.NewReader("\n\n"))
	if !errors.Is(err, errMissingHeader) {
		t.Fatalf("got %v, want errMissingHeader", err)
	}
}

func TestImportRejectsUnsupportedVersion(t *testing.T) {
	svc := &Service{batchSize: defaultBatchSize}

	err := svc.Import(context.Background(), strings.NewReader(`{"kind":"header","version":99,"tables":[]}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported archive version") {
		t.Fatalf("got %v, want version error", err)
	}
}

func TestImportSkipsForeignTables(t *testing.T) {
	svc := &Service{batchSize: defaultBatchSize}

	archive := strings.Join([]string{
		`{"kind":"header","version":1,"tables":["user_brains"]}`,
		`{"kind":"row","table":"legacy_scores","data":{"id":1}}`,
		`{"kind":"comment","table":"","data":null}`,
	}, "\n")
	// No row ever targets a selected table, so the nil db is never touched.
	if err := svc.Import(context.Background(), strings.NewReader(archive)); err != nil {
		t.Fatalf("Import: %v", err)
	}
}

func TestNormalizeRowConvertsBytes(t *testing.T) {
	row := map[string]any{
		"doc":     []byte(`{"user_id":"u1"}`),
		"user_id": "u1",
		"count":   int64(3),
	}
	out := normalizeRow(row)
	if got, ok := out["doc"].(string); !ok || got != `{"user_id":"u1"}` {
		t.Errorf("doc: got %#v", out["doc"])
	}
	if out["user_id"] != "u1" || out["count"] != int64(3) {
		t.Errorf("untouched values changed: %#v", out)
	}
}

func TestWithBatchSizeIgnoresNonPositive(t *testing.T) {
	svc := &Service{batchSize: defaultBatchSize}
	WithBatchSize(0)(svc)
	if svc.batchSize != defaultBatchSize {
		t.Errorf("zero must keep the default, got %d", svc.batchSize)
	}
	WithBatchSize(64)(svc)
	if svc.batchSize != 64 {
		t.Errorf("got %d, want 64", svc.batchSize)
	}
}
