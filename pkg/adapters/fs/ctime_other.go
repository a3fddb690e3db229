//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"
)

func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
