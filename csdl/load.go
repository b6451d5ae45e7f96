package csdl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DuplicatePolicy controls how repeated object keys in a JSON document are
// handled.
type DuplicatePolicy int

const (
	DuplicateIgnore DuplicatePolicy = iota
	DuplicateWarn
	DuplicateError
)

// LoadOpt configures the loaders. When several are passed, the last one wins.
type LoadOpt struct {
	// Duplicates applies to JSON input. YAML input always rejects repeated
	// mapping keys.
	Duplicates DuplicatePolicy
	// Strict rejects fields the records do not know.
	Strict bool
	// MaxWarnings caps Document.Warnings; zero means no cap.
	MaxWarnings int
}

// Warning codes.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Warning is a loader finding that did not prevent decoding.
type Warning struct {
	Code string
	// Path is a JSON pointer to the object holding the key.
	Path    string
	Key     string
	Message string
}

var (
	// ErrDuplicateKey is returned under DuplicateError.
	ErrDuplicateKey = errors.New("csdl: duplicate key")
	// ErrUnknownFormat is returned by Load for unrecognized file extensions.
	ErrUnknownFormat = errors.New("csdl: unknown document format")
)

func lastOpt(opts []LoadOpt) LoadOpt {
	if len(opts) == 0 {
		return LoadOpt{}
	}
	return opts[len(opts)-1]
}

// DecodeJSON decodes a JSON document.
func DecodeJSON(data []byte, opts ...LoadOpt) (*Document, error) {
	opt := lastOpt(opts)
	warns, err := detectDuplicateKeys(data, opt.Duplicates, opt.MaxWarnings)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if opt.Strict {
		dec.DisallowUnknownFields()
	}
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("csdl: decode json: %w", err)
	}
	doc.Warnings = warns
	return &doc, nil
}

// DecodeJSONReader reads r fully and decodes it with DecodeJSON.
func DecodeJSONReader(r io.Reader, opts ...LoadOpt) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(data, opts...)
}

// DecodeYAML decodes a YAML stream. A stream of several documents yields one
// Document whose schemas are concatenated in stream order; the first
// non-empty version wins.
func DecodeYAML(data []byte, opts ...LoadOpt) (*Document, error) {
	opt := lastOpt(opts)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(opt.Strict)
	out := &Document{}
	for i := 0; ; i++ {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("csdl: decode yaml document %d: %w", i, err)
		}
		if out.Version == "" {
			out.Version = doc.Version
		}
		out.Schemas = append(out.Schemas, doc.Schemas...)
	}
	return out, nil
}

// Load reads path and decodes it according to its extension: .json, or
// .yaml and .yml.
func Load(path string, opts ...LoadOpt) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data, opts...)
	case ".yaml", ".yml":
		return DecodeYAML(data, opts...)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
