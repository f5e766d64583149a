package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/txclean/internal/model"
)

// Parser converts a bank CSV file into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// detector is implemented by parsers that can recognize their header row.
type detector interface {
	Detect(header []string) bool
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
	order   []string
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, key)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists registered formats in registration order.
func (r *Registry) Formats() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Detect returns the first registered parser that recognizes header, or nil.
func (r *Registry) Detect(header []string) Parser {
	for _, key := range r.order {
		if d, ok := r.parsers[key].(detector); ok && d.Detect(header) {
			return r.parsers[key]
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MemoParser{})
	r.Register(&ChaseParser{})
	return r
}

// processedDir is the subdirectory of the import directory for finished files.
const processedDir = "processed"

// Scan returns CSV files directly inside dir, sorted by name.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// MarkProcessed moves dir/fileName to dir/processed/fileName.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// FormatAuto asks LoadFile to pick a parser from the file's header row.
const FormatAuto = "auto"

// ErrUnknownFormat is returned when no parser matches the requested format.
var ErrUnknownFormat = errors.New("unknown import format")

// LoadFile reads path with the parser registered under format, or with the
// first parser that recognizes the header when format is FormatAuto. Every
// returned Transaction carries the file's base name as Source.
func (r *Registry) LoadFile(path, format string) ([]model.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p Parser
	if strings.EqualFold(format, FormatAuto) {
		header, err := csv.NewReader(bytes.NewReader(data)).Read()
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable header in %s", ErrMissingColumns, filepath.Base(path))
		}
		if p = r.Detect(header); p == nil {
			return nil, fmt.Errorf("%w: no parser recognizes %s", ErrMissingColumns, filepath.Base(path))
		}
	} else if p = r.Get(format); p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	txns, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", filepath.Base(path), p.Format(), err)
	}
	source := filepath.Base(path)
	for i := range txns {
		txns[i].Source = source
	}
	return txns, nil
}
