package fs

import (
	"fmt"
	"os"

	"github.com/aretw0/scribe/pkg/core"
)

// modeFlags maps each supported mode to its open flags. Files are always new,
// so O_CREATE|O_EXCL is added by the caller; the read family is opened
// read-write so that the content can still be stored.
var modeFlags = map[core.Mode]int{
	core.ModeRead:             os.O_RDWR,
	core.ModeReadBinary:       os.O_RDWR,
	core.ModeReadWrite:        os.O_RDWR,
	core.ModeWrite:            os.O_WRONLY | os.O_TRUNC,
	core.ModeWriteBinary:      os.O_WRONLY | os.O_TRUNC,
	core.ModeWriteRead:        os.O_RDWR | os.O_TRUNC,
	core.ModeWriteReadBinary:  os.O_RDWR | os.O_TRUNC,
	core.ModeAppend:           os.O_WRONLY | os.O_APPEND,
	core.ModeAppendBinary:     os.O_WRONLY | os.O_APPEND,
	core.ModeAppendRead:       os.O_RDWR | os.O_APPEND,
	core.ModeAppendReadBinary: os.O_RDWR | os.O_APPEND,
}

func openFlags(mode core.Mode) (int, error) {
	flags, ok := modeFlags[mode]
	if !ok {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidMode, mode)
	}
	return flags, nil
}
