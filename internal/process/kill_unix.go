//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the whole process group so orphaned Chrome
// helpers die with the browser. Errors are ignored; the rod launcher's
// own Kill covers the case where the group is already gone.
func KillTree(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
