package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Document is one parsed document.
type Document struct {
	Path    string
	Format  Format
	Content []byte
	Tree    any
}

// Source loads documents.
type Source interface {
	Load(ctx context.Context) ([]*Document, error)
}

// FileSource loads documents from disk. The path can be a single file or a
// directory; a directory yields every supported file below it.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a new file-based document source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Path returns the configured path.
func (s *FileSource) Path() string { return s.path }

// Paths lists the supported files under the configured path in lexical
// order. A single file is returned as is, whatever its extension.
func (s *FileSource) Paths(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}
	if !info.IsDir() {
		return []string{s.path}, nil
	}

	var paths []string
	err = filepath.WalkDir(s.path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		if _, fmtErr := FormatFor(path); fmtErr != nil {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// Load reads every document under the configured path. A file that fails to
// read or parse stops the load.
func (s *FileSource) Load(ctx context.Context) ([]*Document, error) {
	paths, err := s.Paths(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	s.logger.Debug("loaded documents from source",
		"path", s.path,
		"document_count", len(docs),
	)
	return docs, nil
}

// ReadFile reads and parses one document. Read failures wrap the os error;
// syntax errors are *ParseError.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	tree, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Format: format, Content: data, Tree: tree}, nil
}

// MemorySource is an in-memory document source for testing.
type MemorySource struct {
	docs []*Document
}

// NewMemorySource parses each content with the given format.
func NewMemorySource(format Format, contents ...string) (*MemorySource, error) {
	s := &MemorySource{}
	for i, c := range contents {
		name := fmt.Sprintf("memory-%d.%s", i, format)
		tree, err := Parse([]byte(c), format, name)
		if err != nil {
			return nil, err
		}
		s.docs = append(s.docs, &Document{Path: name, Format: format, Content: []byte(c), Tree: tree})
	}
	return s, nil
}

// Load returns the documents stored in memory.
func (s *MemorySource) Load(ctx context.Context) ([]*Document, error) {
	docs := make([]*Document, len(s.docs))
	copy(docs, s.docs)
	return docs, nil
}
