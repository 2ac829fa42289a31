// Package schemas generates the JSON schema of the harborsync configuration file.
package schemas

//go:generate go run gen_schema.go harborsync-config.schema.json

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/invopop/jsonschema"
)

// Generate returns the indented JSON schema of v1alpha1.Config. Property names follow the
// keys accepted in config files, credentials included.
func Generate() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		FieldNameTag:              "mapstructure",
		Mapper:                    customTypeMapper,
	}
	schema := reflector.Reflect(&v1alpha1.Config{})

	customizeSchema(schema)

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}

func customizeSchema(schema *jsonschema.Schema) {
	schema.ID = ""
	schema.Title = "harborsync Configuration"
	schema.Description = "JSON schema for the harborsync configuration file (harborsync.yaml)"

	// Every key has a default or may come from flags and the environment.
	walkSchema(schema, func(s *jsonschema.Schema) {
		s.Required = nil
	})

	if schema.Properties == nil {
		return
	}

	for _, key := range []string{"source", "destination"} {
		if endpoint, ok := schema.Properties.Get(key); ok && endpoint != nil && endpoint.Properties != nil {
			if url, ok := endpoint.Properties.Get("url"); ok && url != nil {
				url.Description = "Registry URL; https is assumed without a scheme."
			}
		}
	}

	if replication, ok := schema.Properties.Get("replication"); ok && replication != nil && replication.Properties != nil {
		for _, key := range []string{"pageSize", "concurrency"} {
			if prop, ok := replication.Properties.Get(key); ok && prop != nil {
				prop.Minimum = json.Number("1")
			}
		}

		if prop, ok := replication.Properties.Get("pageSize"); ok && prop != nil {
			prop.Maximum = json.Number(strconv.Itoa(v1alpha1.MaxPageSize))
		}
	}
}

// walkSchema traverses the schema tree and calls fn on each node.
func walkSchema(schema *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if schema == nil {
		return
	}

	fn(schema)

	if schema.Properties != nil {
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			walkSchema(pair.Value, fn)
		}
	}

	if schema.Items != nil {
		walkSchema(schema.Items, fn)
	}

	if schema.AdditionalProperties != nil {
		walkSchema(schema.AdditionalProperties, fn)
	}
}

// customTypeMapper renders types implementing v1alpha1.EnumValuer as string enums.
func customTypeMapper(t reflect.Type) *jsonschema.Schema {
	enumValuerType := reflect.TypeFor[v1alpha1.EnumValuer]()
	if !reflect.PointerTo(t).Implements(enumValuerType) {
		return nil
	}

	valuer, _ := reflect.New(t).Interface().(v1alpha1.EnumValuer)
	values := valuer.ValidValues()

	enums := make([]any, len(values))
	for i, v := range values {
		enums[i] = v
	}

	return &jsonschema.Schema{Type: "string", Enum: enums}
}
