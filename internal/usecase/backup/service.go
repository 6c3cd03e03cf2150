// Package backup streams progression data to and from NDJSON archives. Each
// archive starts with a header line carrying the format version, followed by
// one row line per stored record, so partial restores stay inspectable with
// standard line tooling.
package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eslsoft/parlato/internal/adapter/repository"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1
)

var (
	errNoTablesSelected = errors.New("backup: no tables selected")
	errMissingHeader    = errors.New("backup: archive is missing its header line")
)

// ProgressReporter receives progress callbacks during export and import.
type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// tableSpec describes one archivable table and its upsert key.
type tableSpec struct {
	name     string
	conflict []string
	assign   []string
}

var tableSpecs = []tableSpec{
	{name: repository.BrainRecord{}.TableName(), conflict: []string{"user_id"}, assign: []string{"doc", "updated_at"}},
	{name: repository.GameConfigRecord{}.TableName(), conflict: []string{"id"}, assign: []string{"doc", "updated_at"}},
}

// Service exports and imports the engine's tables over one gorm connection.
type Service struct {
	db        *gorm.DB
	batchSize int
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewService constructs a backup service bound to the provided database.
func NewService(db *gorm.DB, opts ...Option) (*Service, error) {
	if db == nil {
		return nil, errors.New("backup: database is required")
	}
	svc := &Service{db: db, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type streamConfig struct {
	tables   []string
	reporter ProgressReporter
}

type StreamOption func(*streamConfig)

// WithTables restricts the operation to the provided table names.
func WithTables(tables []string) StreamOption {
	return func(cfg *streamConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

// WithProgressReporter registers a reporter for progress callbacks.
func WithProgressReporter(reporter ProgressReporter) StreamOption {
	return func(cfg *streamConfig) {
		cfg.reporter = reporter
	}
}

type headerLine struct {
	Kind      string    `json:"kind"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Tables    []string  `json:"tables"`
}

type rowLine struct {
	Kind  string          `json:"kind"`
	Table string          `json:"table"`
	Data  json.RawMessage `json:"data"`
}

// Export writes the selected tables as an NDJSON archive.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...StreamOption) error {
	cfg := applyStreamOptions(opts)
	specs, err := selectSpecs(cfg.tables)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(w)
	encoder := json.NewEncoder(writer)

	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.name)
	}
	header := headerLine{Kind: "header", Version: formatVersion, CreatedAt: time.Now().UTC(), Tables: names}
	if err := encoder.Encode(header); err != nil {
		return fmt.Errorf("write archive header: %w", err)
	}

	for _, spec := range specs {
		if err := s.exportTable(ctx, encoder, spec, cfg.reporter); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (s *Service) exportTable(ctx context.Context, encoder *json.Encoder, spec tableSpec, reporter ProgressReporter) error {
	var total int64
	if err := s.db.WithContext(ctx).Table(spec.name).Count(&total).Error; err != nil {
		return fmt.Errorf("count %s: %w", spec.name, err)
	}
	reporter.StartTable(spec.name, int(total))
	defer reporter.FinishTable(spec.name)

	offset := 0
	for {
		var rows []map[string]any
		err := s.db.WithContext(ctx).
			Table(spec.name).
			Order(strings.Join(spec.conflict, ", ")).
			Limit(s.batchSize).
			Offset(offset).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("read %s: %w", spec.name, err)
		}
		if len(rows) == 0 {
			return nil
		}
		for _, row := range rows {
			data, err := json.Marshal(normalizeRow(row))
			if err != nil {
				return fmt.Errorf("encode %s row: %w", spec.name, err)
			}
			if err := encoder.Encode(rowLine{Kind: "row", Table: spec.name, Data: data}); err != nil {
				return fmt.Errorf("write %s row: %w", spec.name, err)
			}
		}
		reporter.Increment(spec.name, len(rows))
		offset += len(rows)
	}
}

// Import restores an NDJSON archive, upserting over existing rows.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...StreamOption) error {
	cfg := applyStreamOptions(opts)
	specs, err := selectSpecs(cfg.tables)
	if err != nil {
		return err
	}
	wanted := make(map[string]tableSpec, len(specs))
	for _, spec := range specs {
		wanted[spec.name] = spec
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	sawHeader := false
	pending := make(map[string][]map[string]any)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sawHeader {
			var header headerLine
			if err := json.Unmarshal([]byte(line), &header); err != nil || header.Kind != "header" {
				return errMissingHeader
			}
			if header.Version != formatVersion {
				return fmt.Errorf("backup: unsupported archive version %d", header.Version)
			}
			sawHeader = true
			continue
		}

		var row rowLine
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return fmt.Errorf("decode archive line: %w", err)
		}
		if row.Kind != "row" {
			continue
		}
		spec, ok := wanted[row.Table]
		if !ok {
			continue
		}
		var data map[string]any
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return fmt.Errorf("decode %s row: %w", row.Table, err)
		}
		pending[spec.name] = append(pending[spec.name], data)
		if len(pending[spec.name]) >= s.batchSize {
			if err := s.flushRows(ctx, spec, pending[spec.name], cfg.reporter); err != nil {
				return err
			}
			pending[spec.name] = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	if !sawHeader {
		return errMissingHeader
	}

	for _, spec := range specs {
		if rows := pending[spec.name]; len(rows) > 0 {
			if err := s.flushRows(ctx, spec, rows, cfg.reporter); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) flushRows(ctx context.Context, spec tableSpec, rows []map[string]any, reporter ProgressReporter) error {
	columns := make([]clause.Column, 0, len(spec.conflict))
	for _, name := range spec.conflict {
		columns = append(columns, clause.Column{Name: name})
	}
	err := s.db.WithContext(ctx).
		Table(spec.name).
		Clauses(clause.OnConflict{Columns: columns, DoUpdates: clause.AssignmentColumns(spec.assign)}).
		Create(rows).Error
	if err != nil {
		return fmt.Errorf("restore %s: %w", spec.name, err)
	}
	reporter.Increment(spec.name, len(rows))
	return nil
}

func applyStreamOptions(opts []StreamOption) streamConfig {
	cfg := streamConfig{reporter: noopProgress{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reporter == nil {
		cfg.reporter = noopProgress{}
	}
	return cfg
}

func selectSpecs(names []string) ([]tableSpec, error) {
	if len(names) == 0 {
		return tableSpecs, nil
	}
	byName := make(map[string]tableSpec, len(tableSpecs))
	for _, spec := range tableSpecs {
		byName[spec.name] = spec
	}
	selected := make([]tableSpec, 0, len(names))
	for _, name := range names {
		spec, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("backup: unknown table %q", name)
		}
		selected = append(selected, spec)
	}
	if len(selected) == 0 {
		return nil, errNoTablesSelected
	}
	return selected, nil
}

// normalizeRow converts driver byte slices to strings so archives stay
// readable and round-trip through JSON without base64.
func normalizeRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for key, value := range row {
		if raw, ok := value.([]byte); ok {
			out[key] = string(raw)
			continue
		}
		out[key] = value
	}
	return out
}
