package cmd_test

import (
	"net/http"
	"testing"

	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_ListsSourceProjects(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)
	fixture.source.AddProject("tools")

	out, err := fixture.run(t, "projects")

	require.NoError(t, err, out)
	assert.Contains(t, out, "library\ntools\n")
	assert.Contains(t, out, "2 project(s) found")
}

func TestProjects_RejectedCredentials(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)
	fixture.source.FailPath("/projects", http.StatusUnauthorized)

	_, err := fixture.run(t, "projects")

	require.ErrorIs(t, err, harbor.ErrUnauthorized)
}
