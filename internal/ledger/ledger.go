package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"mediasim/internal/profiles"
)

// identityColumns precede the one-hot profile vector in every ledger file.
var identityColumns = []string{
	"original_path",
	"original_filename",
	"media_type",
	"authenticity",
	"source_model",
	"source_model_details",
	"processed_filename",
	"processed_path",
}

// Row is one artifact record. Profile selects which one-hot column is set.
type Row struct {
	OriginalPath       string
	OriginalFilename   string
	MediaType          string
	Authenticity       string
	SourceModel        string
	SourceModelDetails string
	ProcessedFilename  string
	ProcessedPath      string
	Profile            string
}

// Header returns the full column vocabulary: identity columns plus one
// column per catalog profile in fixed catalog order.
func Header() []string {
	return append(append([]string{}, identityColumns...), profiles.Names()...)
}

// Ledger appends artifact rows to a CSV file. Appends are serialized and
// flushed row by row, so concurrent producers never interleave fields and a
// crash loses at most the in-flight row.
type Ledger struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// Open prepares the ledger at path for appending, writing the header first
// when the file does not exist yet.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)
	if statErr != nil && !isNew {
		return nil, fmt.Errorf("stat ledger: %w", statErr)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	l := &Ledger{path: path, file: file, writer: csv.NewWriter(file)}
	if isNew {
		if err := l.writeRecord(Header()); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("write ledger header: %w", err)
		}
	}
	return l, nil
}

// Path returns the ledger file location.
func (l *Ledger) Path() string { return l.path }

// Append writes one row. The row's profile must be a catalog member.
func (l *Ledger) Append(row Row) error {
	record, err := encode(row)
	if err != nil {
		return err
	}
	return l.writeRecord(record)
}

func (l *Ledger) writeRecord(record []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return errors.New("ledger is closed")
	}
	if err := l.writer.Write(record); err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		return fmt.Errorf("flush ledger row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	l.writer.Flush()
	flushErr := l.writer.Error()
	closeErr := l.file.Close()
	l.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func encode(row Row) ([]string, error) {
	idx := profiles.Index(row.Profile)
	if idx < 0 {
		return nil, fmt.Errorf("ledger row references unknown profile %q", row.Profile)
	}

	names := profiles.Names()
	record := make([]string, 0, len(identityColumns)+len(names))
	record = append(record,
		row.OriginalPath,
		row.OriginalFilename,
		row.MediaType,
		row.Authenticity,
		row.SourceModel,
		row.SourceModelDetails,
		row.ProcessedFilename,
		row.ProcessedPath,
	)
	for i := range names {
		if i == idx {
			record = append(record, "1")
		} else {
			record = append(record, "0")
		}
	}
	return record, nil
}
