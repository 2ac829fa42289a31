package marshaller_test

import (
	"testing"

	"github.com/devantler-tech/harborsync/pkg/io/marshaller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestModel struct {
	Name  string `json:"name"`
	Value int    `json:"value,omitempty"`
}

func TestYAMLMarshaller_Marshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		model    TestModel
		expected string
	}{
		{name: "simple model", model: TestModel{Name: "test", Value: 42}, expected: "name: test\nvalue: 42\n"},
		{name: "omitted zero value", model: TestModel{Name: "test"}, expected: "name: test\n"},
		{name: "special characters", model: TestModel{Name: "test: value"}, expected: "name: 'test: value'\n"},
		{name: "unicode", model: TestModel{Name: "tëst™", Value: 100}, expected: "name: tëst™\nvalue: 100\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := marshaller.NewYAMLMarshaller[TestModel]().Marshal(testCase.model)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestJSONMarshaller_Marshal(t *testing.T) {
	t.Parallel()

	got, err := marshaller.NewJSONMarshaller[TestModel]().Marshal(TestModel{Name: "test", Value: 1})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"test\",\n  \"value\": 1\n}\n", got)
}

func TestMarshaller_Unmarshal(t *testing.T) {
	t.Parallel()

	for _, format := range []marshaller.Format{marshaller.FormatYAML, marshaller.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			m, err := marshaller.New[TestModel](format)
			require.NoError(t, err)

			doc, err := m.Marshal(TestModel{Name: "round", Value: 7})
			require.NoError(t, err)

			var model TestModel
			require.NoError(t, m.Unmarshal([]byte(doc), &model))
			assert.Equal(t, TestModel{Name: "round", Value: 7}, model)
		})
	}
}

func TestMarshaller_UnmarshalInvalid(t *testing.T) {
	t.Parallel()

	var model TestModel

	require.Error(t, marshaller.NewYAMLMarshaller[TestModel]().Unmarshal([]byte("name: [unclosed"), &model))
	require.Error(t, marshaller.NewJSONMarshaller[TestModel]().Unmarshal([]byte("{"), &model))
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := marshaller.New[TestModel]("toml")
	require.ErrorIs(t, err, marshaller.ErrUnsupportedFormat)
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, marshaller.FormatJSON, marshaller.FormatForPath("report.JSON"))
	assert.Equal(t, marshaller.FormatYAML, marshaller.FormatForPath("report.yaml"))
	assert.Equal(t, marshaller.FormatYAML, marshaller.FormatForPath("report"))
}
