//go:build unix

package fsmember

import (
	"os"
	"syscall"
)

// owner returns the numeric owner and group of a file.
func owner(fi os.FileInfo) (uid, gid int) {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid), int(st.Gid)
	}
	return 0, 0
}
