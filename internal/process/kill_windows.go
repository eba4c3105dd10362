//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-terminates the process and its children via taskkill.
// /F forces the kill, /T extends it to the whole tree.
func KillTree(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
