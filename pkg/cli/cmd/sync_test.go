package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/cli/cmd"
	"github.com/devantler-tech/harborsync/pkg/svc/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestSync_CopiesMissingTags(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)
	reportPath := filepath.Join(t.TempDir(), "out", "report.json")

	out, err := fixture.run(t, "sync", "--report", reportPath)

	require.NoError(t, err, out)
	assert.Equal(t, []string{fixture.image("library/nginx:v1")}, fixture.copier.Calls())
	assert.Contains(t, out, "registries reachable")
	assert.Contains(t, out, "copied "+fixture.destination.Host()+"/library/nginx:v1")
	assert.Contains(t, out, "1 copied, 1 already present, 0 failed")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report struct {
		Source string         `json:"source"`
		Totals map[string]int `json:"totals"`
	}

	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, fixture.source.Host(), report.Source)
	assert.Equal(t, 1, report.Totals["succeeded"])
	assert.Equal(t, 1, report.Totals["skipped"])
}

func TestSync_SecondRunCopiesNothing(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)

	_, err := fixture.run(t, "sync")
	require.NoError(t, err)

	out, err := fixture.run(t, "sync")

	require.NoError(t, err, out)
	assert.Len(t, fixture.copier.Calls(), 1)
	assert.Contains(t, out, "0 copied, 2 already present, 0 failed")
}

func TestSync_ExplicitRepository(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)
	fixture.source.AddArtifact("tools", "busybox", tagged("sha256:b1", t0, "1.36"))

	out, err := fixture.run(t, "sync", "busybox")

	require.NoError(t, err, out)
	assert.Equal(t, []string{fixture.image("tools/busybox:1.36")}, fixture.copier.Calls())
}

func TestSync_DryRunFlag(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)

	out, err := fixture.run(t, "sync", "--dry-run")

	require.NoError(t, err, out)
	assert.Empty(t, fixture.copier.Calls())
	assert.Contains(t, out, "1 to copy, 1 already present")
}

func TestSync_FailedTransferExitsWithError(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)
	fixture.copier.fail = true

	out, err := fixture.run(t, "sync")

	require.ErrorIs(t, err, cmd.ErrReplicationIncomplete)
	assert.Contains(t, out, "failed to copy "+fixture.image("library/nginx:v1"))
	assert.Contains(t, out, "push denied")
}

func TestSync_UnknownRepository(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)

	out, err := fixture.run(t, "sync", "missing")

	require.ErrorIs(t, err, cmd.ErrReplicationIncomplete)
	assert.Contains(t, out, "repository missing not found in any source project")
	assert.Empty(t, fixture.copier.Calls())
}

func TestSync_MissingDestination(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&discard{})
	root.SetErr(&discard{})
	root.SetArgs([]string{"sync", "--source", "https://old.example.org"})

	err := root.Execute()

	require.ErrorIs(t, err, v1alpha1.ErrDestinationRequired)
}

func TestPlan_PrintsWithoutCopying(t *testing.T) {
	t.Parallel()

	fixture := newFixture(t)
	reportPath := filepath.Join(t.TempDir(), "plan.yaml")

	out, err := fixture.run(t, "plan", "--report", reportPath)

	require.NoError(t, err, out)
	assert.Empty(t, fixture.copier.Calls())
	assert.Contains(t, out, "would copy "+fixture.image("library/nginx:v1"))
	assert.Contains(t, out, "1 to copy, 1 already present")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report struct {
		DryRun       bool             `json:"dryRun"`
		Totals       transfer.Summary `json:"totals"`
		Repositories []struct {
			Repository string `json:"repository"`
		} `json:"repositories"`
	}

	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Totals.Pending)
	require.Len(t, report.Repositories, 1)
	assert.Equal(t, "nginx", report.Repositories[0].Repository)
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
