//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree force-terminates pid and its children with taskkill.
func killTree(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
