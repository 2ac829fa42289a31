package harbor_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "harbor format", input: `"2024-03-09T08:07:06.000Z"`, want: want},
		{name: "rfc3339 with offset", input: `"2024-03-09T10:07:06+02:00"`, want: want},
		{name: "no zone", input: `"2024-03-09T08:07:06"`, want: want},
		{name: "space separated", input: `"2024-03-09 08:07:06"`, want: want},
		{name: "epoch number", input: `1709971626`, want: want},
		{name: "epoch string", input: `"1709971626"`, want: want},
		{name: "null", input: `null`, want: time.Time{}},
		{name: "empty string", input: `""`, want: time.Time{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var ts harbor.Timestamp

			require.NoError(t, json.Unmarshal([]byte(testCase.input), &ts))
			assert.True(t, testCase.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_UnmarshalJSON_Invalid(t *testing.T) {
	t.Parallel()

	var ts harbor.Timestamp

	require.NoError(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "yesterday", ts.Invalid())
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	ts, err := harbor.ParseTimestamp("2024-03-09T08:07:06Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC).Equal(ts.Time))
	assert.Empty(t, ts.Invalid())

	_, err = harbor.ParseTimestamp("yesterday")
	require.ErrorIs(t, err, harbor.ErrInvalidTimestamp)
}

func TestArtifact_DecodePageWithInvalidPushTime(t *testing.T) {
	t.Parallel()

	payload := `[{"digest":"sha256:a","push_time":"2024-03-09T08:07:06.000Z","tags":[{"name":"v1"}]},` +
		`{"digest":"sha256:b","push_time":"not a time","tags":[{"name":"v2"}]}]`

	var artifacts []harbor.Artifact

	require.NoError(t, json.Unmarshal([]byte(payload), &artifacts))
	require.Len(t, artifacts, 2)
	assert.False(t, artifacts[0].PushTime.IsZero())
	assert.True(t, artifacts[1].PushTime.IsZero())
	assert.Equal(t, "not a time", artifacts[1].PushTime.Invalid())
}

func TestArtifact_Decode(t *testing.T) {
	t.Parallel()

	payload := `{"digest":"sha256:abc","media_type":"application/vnd.oci.image.index.v1+json",` +
		`"push_time":"2024-03-09T08:07:06.000Z","tags":[{"name":"v1"},{"name":""},{"name":"latest"}]}`

	var artifact harbor.Artifact

	require.NoError(t, json.Unmarshal([]byte(payload), &artifact))
	assert.Equal(t, "sha256:abc", artifact.Digest)
	assert.Equal(t, []string{"v1", "latest"}, artifact.TagNames())
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(harbor.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(harbor.Timestamp{Time: time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-09T08:07:06Z"`, string(data))
}
