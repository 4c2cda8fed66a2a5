// Package output renders command results and error responses as JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	// FormatYAML renders YAML documents.
	FormatYAML Format = "yaml"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
)

// FormatData encodes data in format. The result always ends in a newline.
func FormatData(data any, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, data, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write encodes data in format to w, terminated by a newline. Nothing is
// written when encoding fails.
func Write(w io.Writer, data any, format Format) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(data)
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to format as %s: %w", format, err)
	}

	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

// ParseFormat parses a format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format '%s': must be 'yaml' or 'json'", s)
	}
}
