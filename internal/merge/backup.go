package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	cp "github.com/otiai10/copy"
)

// BackupTimestampFormat is sortable, second-granular and safe in file names.
const BackupTimestampFormat = "20060102T150405"

// BackupPath returns dest + ".bak." + the timestamp for now.
func BackupPath(dest string, now time.Time) string {
	return dest + ".bak." + now.Format(BackupTimestampFormat)
}

// nextBackupPath returns BackupPath, or the first "-N" variant of it that
// does not exist yet, so an earlier backup from the same second survives.
func nextBackupPath(dest string, now time.Time) (string, error) {
	base := BackupPath(dest, now)
	candidate := base
	for i := 1; ; i++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check backup path %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// copyFile copies src to dst keeping permissions and access/modification
// times. Symlinks are followed and parent directories of dst are created.
func copyFile(src, dst string) error {
	err := cp.Copy(src, dst, cp.Options{
		OnSymlink:         func(string) cp.SymlinkAction { return cp.Deep },
		PermissionControl: cp.PerservePermission,
		PreserveTimes:     true,
		Sync:              true,
	})
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}
