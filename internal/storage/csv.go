package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adriangreen/todo-tui/internal/tasks"
)

// DefaultFileName is the name of the task file inside the data directory
const DefaultFileName = "data.csv"

// ErrMalformedRecord is returned when a row of the task file cannot be decoded
var ErrMalformedRecord = errors.New("malformed task record")

var header = []string{"id", "desc", "status", "updated"}

// CSVFile stores tasks as rows of a CSV file, one task per row in display order
type CSVFile struct {
	Path string
}

// NewCSVFile returns a CSVFile for the task file inside dir
func NewCSVFile(dir string) *CSVFile {
	return &CSVFile{Path: filepath.Join(dir, DefaultFileName)}
}

// Exists reports whether the task file is present
func (f *CSVFile) Exists() bool {
	info, err := os.Stat(f.Path)
	return err == nil && !info.IsDir()
}

// Load reads all tasks from disk. A missing file yields no tasks and no error.
func (f *CSVFile) Load() ([]tasks.Task, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Save writes all tasks to disk, creating the data directory when needed.
// The file is replaced atomically so an interrupted save keeps the old contents.
func (f *CSVFile) Save(list []tasks.Task) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".data-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp task file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, list); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp task file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to write task file: %w", err)
	}
	return nil
}

// Clean removes the task file and, when nothing else is left in it, the data directory
func (f *CSVFile) Clean() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove task file: %w", err)
	}
	// A non-empty directory holds other files (config, logs); leave it
	_ = os.Remove(filepath.Dir(f.Path))
	return nil
}

// Encode writes the header and one row per task
func Encode(w io.Writer, list []tasks.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, t := range list {
		record := []string{
			t.ID.String(),
			t.Description,
			strconv.FormatBool(t.Completed),
			formatUpdated(t.Updated),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write task %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush task file: %w", err)
	}
	return nil
}

// Decode reads tasks written by Encode. The header row is required.
func Decode(r io.Reader) ([]tasks.Task, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !isHeader(first) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedRecord, strings.Join(first, ","))
	}

	var list []tasks.Task
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		t, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		list = append(list, t)
	}
	return list, nil
}

func isHeader(record []string) bool {
	if len(record) < 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if strings.TrimSpace(record[i]) != header[i] {
			return false
		}
	}
	return true
}

// decodeRecord converts a row into a Task. The updated column is optional.
func decodeRecord(record []string) (tasks.Task, error) {
	if len(record) < 3 {
		return tasks.Task{}, fmt.Errorf("%w: expected at least 3 fields, got %d", ErrMalformedRecord, len(record))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 32)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("%w: bad id %q", ErrMalformedRecord, record[0])
	}
	completed, err := strconv.ParseBool(strings.TrimSpace(record[2]))
	if err != nil {
		return tasks.Task{}, fmt.Errorf("%w: bad status %q", ErrMalformedRecord, record[2])
	}

	t := tasks.Task{
		ID:          tasks.ID(id),
		Description: record[1],
		Completed:   completed,
	}
	if len(record) > 3 {
		updated, err := parseUpdated(record[3])
		if err != nil {
			return tasks.Task{}, fmt.Errorf("%w: bad updated %q", ErrMalformedRecord, record[3])
		}
		t.Updated = updated
	}
	return t, nil
}

func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseUpdated accepts RFC 3339 timestamps and unix seconds
func parseUpdated(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}
