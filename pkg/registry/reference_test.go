package registry_test

import (
	"testing"

	"github.com/devantler-tech/harborsync/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositoryReference_Normalisation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		project    string
		repository string
		wantName   string
		wantPath   string
	}{
		{name: "prefixed", project: "library", repository: "library/myrepo", wantName: "myrepo", wantPath: "library/myrepo"},
		{name: "bare", project: "library", repository: "myrepo", wantName: "myrepo", wantPath: "library/myrepo"},
		{name: "mixed case", project: "library", repository: "MyRepo", wantName: "myrepo", wantPath: "library/myrepo"},
		{name: "nested", project: "team", repository: "team/apps/api", wantName: "apps/api", wantPath: "team/apps/api"},
		{name: "prefix stripped once", project: "a", repository: "a/a/b", wantName: "a/b", wantPath: "a/a/b"},
		{name: "similar prefix kept", project: "lib", repository: "library/x", wantName: "library/x", wantPath: "lib/library/x"},
		{name: "no project", project: "", repository: "Solo", wantName: "solo", wantPath: "solo"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ref := registry.NewRepositoryReference(testCase.project, testCase.repository)

			assert.Equal(t, testCase.wantName, ref.Name())
			assert.Equal(t, testCase.wantPath, ref.Path())
			assert.Equal(t, testCase.wantPath, ref.String())
		})
	}
}

func TestNewRepositoryReference_Idempotent(t *testing.T) {
	t.Parallel()

	first := registry.NewRepositoryReference("library", "library/myrepo")
	second := registry.NewRepositoryReference(first.Project(), first.Name())

	assert.Equal(t, first, second)
}

func TestRepositoryReference_SourceNameKeepsCase(t *testing.T) {
	t.Parallel()

	ref := registry.NewRepositoryReference("Library", "Library/MyRepo")

	assert.Equal(t, "Library", ref.SourceProject())
	assert.Equal(t, "MyRepo", ref.SourceName())
	assert.Equal(t, "library", ref.Project())
	assert.Equal(t, "myrepo", ref.Name())
}

func TestRepositoryReference_Image(t *testing.T) {
	t.Parallel()

	ref := registry.NewRepositoryReference("library", "MyRepo")

	assert.Equal(t, "goharbor.contoso.org/library/myrepo:v1.2", ref.Image("goharbor.contoso.org", "v1.2"))
	assert.Equal(t, "h:5000/library/myrepo:Latest", ref.Image("h:5000/", "Latest"), "tags keep their case")
}

func TestEncodeRepositoryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "nginx", want: "nginx"},
		{in: "apps/api", want: "apps/api"},
		{in: "apps/my repo", want: "apps/my%20repo"},
		{in: "a%b/c?d", want: "a%25b/c%3Fd"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, registry.EncodeRepositoryPath(testCase.in), testCase.in)
	}
}

func TestRepositoryReference_EncodedNames(t *testing.T) {
	t.Parallel()

	ref := registry.NewRepositoryReference("p", "p/Group/My Repo")

	assert.Equal(t, "Group/My%20Repo", ref.EncodedSourceName())
	assert.Equal(t, "group/my%20repo", ref.EncodedName())
}

func TestSplitQualifiedName(t *testing.T) {
	t.Parallel()

	project, repository, ok := registry.SplitQualifiedName("library/apps/api")
	assert.True(t, ok)
	assert.Equal(t, "library", project)
	assert.Equal(t, "apps/api", repository)

	_, repository, ok = registry.SplitQualifiedName("nginx")
	assert.False(t, ok)
	assert.Equal(t, "nginx", repository)
}
