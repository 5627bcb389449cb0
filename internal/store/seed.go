package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pkt.systems/sndbq/schema"
)

// ErrReadOnly is returned by InsertStatus on stores sndbq only reads.
var ErrReadOnly = errors.New("store does not accept status records")

// StatusRecord is one status row of a seed file.
type StatusRecord struct {
	Program        string    `yaml:"program"`
	Part           string    `yaml:"part,omitempty"`
	Status         string    `yaml:"status"`
	Timestamp      time.Time `yaml:"timestamp"`
	Sheet          string    `yaml:"sheet"`
	MaterialMaster string    `yaml:"material_master"`
	HeatNumber     string    `yaml:"heat_number,omitempty"`
	PONumber       string    `yaml:"po_number,omitempty"`
	WBS            string    `yaml:"wbs,omitempty"`
	Operator       string    `yaml:"operator,omitempty"`
}

type seedFile struct {
	Records []StatusRecord `yaml:"records"`
}

// LoadSeed decodes a YAML document with a top-level records list.
func LoadSeed(r io.Reader) ([]StatusRecord, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i, rec := range doc.Records {
		if strings.TrimSpace(rec.Program) == "" || strings.TrimSpace(rec.Sheet) == "" {
			return nil, fmt.Errorf("seed record %d: program and sheet are required", i+1)
		}
		if _, err := schema.ParseStatusKind(rec.Status); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i+1, err)
		}
	}
	return doc.Records, nil
}

// InsertStatus stores rec. A zero timestamp means now.
func (s *SQL) InsertStatus(ctx context.Context, rec StatusRecord) error {
	if s.dialect.statusInsert == "" {
		return fmt.Errorf("%w: %s", ErrReadOnly, s.dialect.driver)
	}
	if _, err := schema.ParseStatusKind(rec.Status); err != nil {
		return err
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.db.ExecContext(ctx, s.dialect.statusInsert,
		rec.Program, nullable(rec.Part), rec.Status, ts.UTC(), rec.Sheet, rec.MaterialMaster,
		nullable(rec.HeatNumber), nullable(rec.PONumber), nullable(rec.WBS), nullable(rec.Operator))
	if err != nil {
		return fmt.Errorf("insert status %s: %w", rec.Program, err)
	}
	return nil
}

func nullable(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
