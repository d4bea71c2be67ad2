//go:build windows

package player

import (
	"os"
	"os/exec"
	"syscall"
)

const createNoWindow = 0x08000000

// sysProcAttr keeps mpv from opening a console window of its own.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNoWindow}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// processAlive reports whether pid exists. FindProcess opens a handle on
// Windows and fails for unknown pids.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = process.Release()
	return true
}
