package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// IsWritable reports whether the directory at path accepts new files.
// It probes by creating and removing a temp file, which works across
// platforms where permission bits alone are unreliable.
func IsWritable(dir string) bool {
	probe := filepath.Join(dir, ".skill-hub-probe")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
