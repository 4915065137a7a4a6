// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"fmt"
	"strings"
)

// Kind selects between the two request families. Each kind has its
// own directory names, counter file and payload encoding.
type Kind string

const (
	KindMigration Kind = "migration"
	KindRetrieval Kind = "retrieval"
)

// Kinds lists both request kinds in display order.
var Kinds = []Kind{KindMigration, KindRetrieval}

// ParseKind accepts "migration"/"migrate" and "retrieval"/"retrieve".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "migration", "migrate", "migrations":
		return KindMigration, nil
	case "retrieval", "retrieve", "retrievals":
		return KindRetrieval, nil
	}
	return "", fmt.Errorf("unknown request kind %q (want migration or retrieval)", s)
}

// Payload is the kind-specific content of a request file.
type Payload interface {
	// Kind reports which request family the payload belongs to.
	Kind() Kind

	// Encode renders the file content: newline-separated fields, no
	// quoting or escaping.
	Encode() []byte

	// Describe returns human-readable lines for display.
	Describe() []string
}

// Migration asks for a directory to be moved to near-line storage.
type Migration struct {
	Path string `json:"path"`
}

func (Migration) Kind() Kind { return KindMigration }

func (m Migration) Encode() []byte {
	return []byte(m.Path + "\n")
}

func (m Migration) Describe() []string {
	return []string{"path to migrate: " + m.Path}
}

// Retrieval asks for migrated data to be restored. An empty
// DestinationPath means restore to OriginalPath.
type Retrieval struct {
	OriginalPath    string `json:"original_path"`
	DestinationPath string `json:"destination_path,omitempty"`
}

func (Retrieval) Kind() Kind { return KindRetrieval }

func (r Retrieval) Encode() []byte {
	if r.DestinationPath == "" {
		return []byte(r.OriginalPath + "\n")
	}
	return []byte(r.OriginalPath + "\n" + r.DestinationPath + "\n")
}

func (r Retrieval) Describe() []string {
	lines := []string{"original path: " + r.OriginalPath}
	if r.DestinationPath == "" {
		return append(lines, "restore to original location")
	}
	return append(lines, "restore to "+r.DestinationPath)
}

// DecodePayload parses request file content for kind. Lines are
// trimmed and blank lines dropped. Migration needs exactly one line;
// Retrieval needs one or two. Any other count is a [ContentError]
// (Path is left empty for the caller to fill).
func DecodePayload(kind Kind, content []byte) (Payload, error) {
	lines := nonBlankLines(string(content))

	switch kind {
	case KindMigration:
		if len(lines) == 1 {
			return Migration{Path: lines[0]}, nil
		}
	case KindRetrieval:
		switch len(lines) {
		case 1:
			return Retrieval{OriginalPath: lines[0]}, nil
		case 2:
			return Retrieval{OriginalPath: lines[0], DestinationPath: lines[1]}, nil
		}
	default:
		return nil, fmt.Errorf("unknown request kind %q", kind)
	}
	return nil, &ContentError{Kind: kind, Lines: len(lines)}
}

func nonBlankLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// validatePayload rejects payloads that cannot be encoded faithfully.
func validatePayload(payload Payload) error {
	var fields []string
	switch p := payload.(type) {
	case Migration:
		fields = []string{p.Path}
	case Retrieval:
		fields = []string{p.OriginalPath, p.DestinationPath}
	case nil:
		return fmt.Errorf("nil payload")
	default:
		return fmt.Errorf("unsupported payload type %T", payload)
	}
	if strings.TrimSpace(fields[0]) == "" {
		return fmt.Errorf("%s request needs a path", payload.Kind())
	}
	for _, field := range fields {
		if strings.ContainsAny(field, "\n\r") {
			return fmt.Errorf("path %q contains a newline", field)
		}
		if field != strings.TrimSpace(field) {
			return fmt.Errorf("path %q has leading or trailing whitespace", field)
		}
	}
	return nil
}
