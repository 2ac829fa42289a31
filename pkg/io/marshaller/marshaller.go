// Package marshaller renders models as YAML or JSON documents.
package marshaller

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// ErrUnsupportedFormat is returned for formats other than yaml and json.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is a document format.
type Format string

const (
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
)

// Marshaller converts models to and from documents.
type Marshaller[T any] interface {
	Marshal(model T) (string, error)
	Unmarshal(data []byte, model *T) error
}

// New returns the marshaller for format.
func New[T any](format Format) (Marshaller[T], error) {
	switch format {
	case FormatYAML:
		return NewYAMLMarshaller[T](), nil
	case FormatJSON:
		return NewJSONMarshaller[T](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatForPath picks the format from a file extension; anything but .json is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// YAMLMarshaller goes through the model's JSON encoding, so json tags and MarshalJSON
// methods decide the field names.
type YAMLMarshaller[T any] struct{}

// NewYAMLMarshaller creates a YAMLMarshaller.
func NewYAMLMarshaller[T any]() *YAMLMarshaller[T] {
	return &YAMLMarshaller[T]{}
}

// Marshal implements Marshaller.
func (YAMLMarshaller[T]) Marshal(model T) (string, error) {
	data, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}

	return string(data), nil
}

// Unmarshal implements Marshaller.
func (YAMLMarshaller[T]) Unmarshal(data []byte, model *T) error {
	if err := yaml.Unmarshal(data, model); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}

	return nil
}

// JSONMarshaller renders indented JSON.
type JSONMarshaller[T any] struct{}

// NewJSONMarshaller creates a JSONMarshaller.
func NewJSONMarshaller[T any]() *JSONMarshaller[T] {
	return &JSONMarshaller[T]{}
}

// Marshal implements Marshaller.
func (JSONMarshaller[T]) Marshal(model T) (string, error) {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	return string(data) + "\n", nil
}

// Unmarshal implements Marshaller.
func (JSONMarshaller[T]) Unmarshal(data []byte, model *T) error {
	if err := json.Unmarshal(data, model); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	return nil
}
