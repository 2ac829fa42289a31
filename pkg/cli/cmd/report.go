package cmd

import (
	"fmt"

	"github.com/devantler-tech/harborsync/pkg/fsutil"
	"github.com/devantler-tech/harborsync/pkg/io/marshaller"
	"github.com/devantler-tech/harborsync/pkg/svc/replication"
)

// writeReport writes report to path, as JSON for a .json extension and YAML otherwise.
func writeReport(path string, report replication.Report) error {
	path, err := fsutil.ExpandHomePath(path)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	m, err := marshaller.New[replication.Report](marshaller.FormatForPath(path))
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	doc, err := m.Marshal(report)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	err = fsutil.WriteFileAtomic(path, []byte(doc))
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
