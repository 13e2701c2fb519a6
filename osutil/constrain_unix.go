//go:build !windows
// +build !windows

package osutil

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
	"syscall"
)

const (
	me = "osutil.Constrain: "
)

// Constrain reduces process privileges with setgid, setuid and chroot. The daemon calls
// it immediately after the listen sockets are bound, which is the point where root is no
// longer needed.
//
// Order matters. Symbolic names are converted to ids first, while /etc/passwd (or its
// moral equivalent) is still reachable; the chroot happens next, while we still have the
// power to make it; supplementary groups are cleared as part of setgid while the uid is
// still powerful; and setuid comes last, which makes the whole sequence irreversible.
//
// Each step is skipped when its parameter is an empty string. An error leaves the
// process half-constrained, so callers should treat one as fatal.
//
// This function is a noop on Windows.
func Constrain(userName, groupName, chrootDir string) error {

	// Step 1: Convert symbolic names to ids

	uid := -1
	gid := -1
	if len(userName) > 0 {
		u, err := user.Lookup(userName)
		if err != nil {
			return fmt.Errorf(me+"User name lookup failed: %s", err.Error())
		}
		uid, err = strconv.Atoi(u.Uid)
		if err != nil {
			return fmt.Errorf(me+"Could not convert UID %s to an int: %s",
				u.Uid, err.Error())
		}
	}

	if len(groupName) > 0 {
		g, err := user.LookupGroup(groupName)
		if err != nil {
			return fmt.Errorf(me+"Group name lookup failed: %s", err.Error())
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return fmt.Errorf(me+"Could not convert GID %s to an int: %s",
				g.Gid, err.Error())
		}
	}

	// Step 2: chdir/chroot. Needs root, but Chroot() does its own checking.

	if len(chrootDir) > 0 {
		err := os.Chdir(chrootDir)
		if err != nil {
			return fmt.Errorf(me+"Could not cd to %s: %s", chrootDir, err.Error())
		}

		err = syscall.Chroot(chrootDir)
		if err != nil {
			return fmt.Errorf(me+"Could not chroot to %s: %s", chrootDir, err.Error())
		}

		err = os.Chdir("/")
		if err != nil {
			return fmt.Errorf(me+"Could not cd to /: %s", err.Error())
		}
	}

	// Step 3: setgid. This includes removing all supplementary groups.

	if gid != -1 {
		err := syscall.Setgroups([]int{})
		if err != nil {
			return fmt.Errorf(me+"Could not clear group list: %s", err.Error())
		}
		err = syscall.Setgid(gid)
		if err != nil {
			return fmt.Errorf(me+"Could not setgid to %d/%s: %s",
				gid, groupName, err.Error())
		}
	}

	// Step 4: setuid, after which none of the above can be redone

	if uid != -1 {
		err := syscall.Setuid(uid)
		if err != nil {
			return fmt.Errorf(me+"Could not setuid to %d/%s: %s",
				uid, userName, err.Error())
		}
	}

	return nil
}

// ConstraintReport renders the uid/gid/groups/cwd of the process for the startup log so
// an operator can see that Constrain() took effect.
func ConstraintReport() string {
	uid := os.Getuid()
	gid := os.Getgid()
	cwd, _ := os.Getwd()
	gList, _ := os.Getgroups()
	gStr := make([]string, 0, len(gList))
	for _, g := range gList {
		gStr = append(gStr, fmt.Sprintf("%d", g))
	}

	return fmt.Sprintf("uid=%d gid=%d (%s) cwd=%s", uid, gid, strings.Join(gStr, ","), cwd)
}
