package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o600
)

// WriteFileAtomic writes content to output through a temporary file in the same directory
// and renames it into place, so readers never see a partial file. Missing parent
// directories are created.
func WriteFileAtomic(output string, content []byte) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	output = filepath.Clean(output)
	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(output)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	defer func() { _ = os.Remove(tmpName) }()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(filePermUserRW)
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	err = os.Rename(tmpName, output)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return nil
}
