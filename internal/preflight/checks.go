package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// CheckFileExists verifies a regular file exists at the given path.
func CheckFileExists(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("path %s does not exist", path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory", path)
	}

	return nil
}

// CheckExecutable verifies the engine binary is resolvable: either an
// existing file path, or a bare command name found on PATH.
func CheckExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("executable path is required")
	}

	if strings.ContainsRune(path, os.PathSeparator) {
		return CheckFileExists(path)
	}

	if _, err := exec.LookPath(path); err != nil {
		return err
	}
	return nil
}
