//go:build unix

package simulate

import (
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// statOwner returns "owner:group" for path, falling back to numeric ids when
// the names cannot be resolved.
func statOwner(path string) (string, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return "", err
	}

	uid := strconv.FormatUint(uint64(st.Uid), 10)
	gid := strconv.FormatUint(uint64(st.Gid), 10)

	owner := uid
	if u, err := user.LookupId(uid); err == nil {
		owner = u.Username
	}
	group := gid
	if g, err := user.LookupGroupId(gid); err == nil {
		group = g.Name
	}
	return owner + ":" + group, nil
}
