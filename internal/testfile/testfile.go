// Package testfile saves generated tests to disk and loads them back, as
// YAML or JSON depending on the file extension.
package testfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toppers/mocktest/internal/mcqtest"
)

// Format is an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from the path extension: .json is JSON,
// anything else YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes test to w in format f.
func Encode(w io.Writer, test *mcqtest.Test, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(test)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(test); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Save writes test to path.
func Save(path string, test *mcqtest.Test) error {
	var buf bytes.Buffer
	if err := Encode(&buf, test, FormatFor(path)); err != nil {
		return fmt.Errorf("encode test: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a test saved by Save. Unknown fields and multi-document
// files are rejected, and every question must pass the structural and
// answer-key checks.
func Load(path string) (*mcqtest.Test, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	test, err := Decode(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return test, nil
}

// Decode reads a single test from r and checks its questions.
func Decode(r io.Reader, f Format) (*mcqtest.Test, error) {
	var test mcqtest.Test

	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&test); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if dec.More() {
			return nil, errors.New("decode json: more than one document")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&test); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		var extra any
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, errors.New("decode yaml: more than one document")
		}
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}

	if err := check(&test); err != nil {
		return nil, err
	}
	return &test, nil
}

func check(test *mcqtest.Test) error {
	validators := []mcqtest.Validator{
		&mcqtest.StructuralValidator{},
		&mcqtest.AnswerKeyValidator{},
	}
	req := mcqtest.Request{Subject: test.Subject, Chapter: test.Chapter}
	for i := range test.Questions {
		for _, v := range validators {
			if verr := v.Validate(&test.Questions[i], req); verr != nil {
				return fmt.Errorf("question %d: %w", i+1, verr)
			}
		}
	}
	if test.Questions == nil {
		test.Questions = []mcqtest.Question{}
	}
	return nil
}
