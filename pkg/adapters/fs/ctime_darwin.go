//go:build darwin

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func creationTime(path string, info os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime()
	}
	return time.Unix(st.Btimespec.Unix())
}
