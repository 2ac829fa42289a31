package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/devantler-tech/harborsync/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T) map[string]any {
	t.Helper()

	data, err := schemas.Generate()
	require.NoError(t, err)

	var schema map[string]any

	require.NoError(t, json.Unmarshal(data, &schema))

	return schema
}

func mustProp(t *testing.T, schema map[string]any, keys ...string) map[string]any {
	t.Helper()

	current := schema

	for _, key := range keys {
		props, ok := current["properties"].(map[string]any)
		require.True(t, ok, "properties of %s", key)

		current, ok = props[key].(map[string]any)
		require.True(t, ok, "property %s", key)
	}

	return current
}

func TestGenerate_RootMetadata(t *testing.T) {
	t.Parallel()

	schema := generate(t)

	assert.Equal(t, "harborsync Configuration", schema["title"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Nil(t, schema["required"])
}

func TestGenerate_ConfigFileKeys(t *testing.T) {
	t.Parallel()

	schema := generate(t)

	for _, key := range []string{"url", "username", "password", "insecure"} {
		mustProp(t, schema, "source", key)
		mustProp(t, schema, "destination", key)
	}

	mustProp(t, schema, "network", "noProxy")
	mustProp(t, schema, "replication", "allTags")
	assert.Equal(t, "Registry URL; https is assumed without a scheme.",
		mustProp(t, schema, "source", "url")["description"])
}

func TestGenerate_LogLevelEnum(t *testing.T) {
	t.Parallel()

	logLevel := mustProp(t, generate(t), "logLevel")

	assert.Equal(t, "string", logLevel["type"])
	assert.Equal(t, []any{"error", "warn", "info", "debug"}, logLevel["enum"])
}

func TestGenerate_PositiveReplicationSettings(t *testing.T) {
	t.Parallel()

	schema := generate(t)

	assert.InDelta(t, 1, mustProp(t, schema, "replication", "pageSize")["minimum"], 0)
	assert.InDelta(t, 1, mustProp(t, schema, "replication", "concurrency")["minimum"], 0)
	assert.InDelta(t, 100, mustProp(t, schema, "replication", "pageSize")["maximum"], 0)
	assert.NotContains(t, mustProp(t, schema, "replication", "concurrency"), "maximum")
}
