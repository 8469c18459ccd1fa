package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// maxLineBytes bounds a single JSONL record.
const maxLineBytes = 4 * 1024 * 1024

// loadRecords reads a collection from path, picking the decoder by
// extension. JSON and YAML files must hold a top-level array; JSONL
// holds one record per line.
func loadRecords(path string) ([]any, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSONArray(data)
	case ".jsonc":
		return decodeJSONArray(jsonc.ToJSON(data))
	case ".yaml", ".yml":
		var records []any
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return records, nil
	case ".jsonl":
		return decodeJSONLines(data)
	default:
		return nil, fmt.Errorf("unsupported records format %q", ext)
	}
}

func decodeJSONArray(data []byte) ([]any, error) {
	var records []any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse records: %w (top-level must be an array)", err)
	}
	return records, nil
}

func decodeJSONLines(data []byte) ([]any, error) {
	var records []any

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec any
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}
