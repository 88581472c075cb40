// SPDX-License-Identifier: MPL-2.0

//go:build unix

package fingerprint

import (
	"io/fs"
	"syscall"
)

// ownership extracts the numeric owner and group of a file.
func ownership(info fs.FileInfo) (uid, gid int) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid), int(st.Gid)
	}
	return 0, 0
}
