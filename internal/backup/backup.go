// Package backup keeps a bounded JSON log of deleted persistent variables.
// The log is append-only from the caller's view: each Append rewrites the
// file with the new record added and the oldest records dropped past the
// limit.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/envgod/internal/atomicfile"
)

// DefaultLimit is the number of records kept when no limit is given.
const DefaultLimit = 50

// Record is one deleted variable.
type Record struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	DeletedAt time.Time `json:"deleted_at"`
}

// document is the on-disk shape of the log file.
type document struct {
	DeletedVariables []Record `json:"deleted_variables"`
}

// Log appends deletion records to a JSON file.
type Log struct {
	path   string
	limit  int
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithLimit sets the number of most recent records kept.
func WithLimit(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithLogger sets the logger used to report a corrupt log file.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// New returns a log writing to path.
func New(path string, opts ...Option) *Log {
	l := &Log{
		path:   path,
		limit:  DefaultLimit,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append records that name held value and was deleted now. The file is
// created on first use; an unreadable or corrupt file is replaced by a fresh
// log rather than blocking the append.
func (l *Log) Append(name, value string) (Record, error) {
	doc := l.read()

	rec := Record{
		ID:        newID(),
		Name:      name,
		Value:     value,
		DeletedAt: l.now(),
	}
	doc.DeletedVariables = append(doc.DeletedVariables, rec)
	if n := len(doc.DeletedVariables); n > l.limit {
		doc.DeletedVariables = doc.DeletedVariables[n-l.limit:]
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return Record{}, fmt.Errorf("marshal backup log: %w", err)
	}
	data = append(data, '\n')
	if err := atomicfile.WriteFile(l.path, data, 0o600); err != nil {
		return Record{}, fmt.Errorf("write backup log: %w", err)
	}
	return rec, nil
}

// read loads the current log, falling back to an empty one.
func (l *Log) read() document {
	var doc document

	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("backup log unreadable, starting a new one", "path", l.path, "error", err)
		}
		return document{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return document{}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		l.logger.Warn("backup log corrupt, starting a new one", "path", l.path, "error", err)
		return document{}
	}
	return doc
}

// newID generates a UUID v7 for a record.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
