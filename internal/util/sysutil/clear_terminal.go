package sysutil

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// clearSequence moves the cursor home and erases the screen.
const clearSequence = "\033[H\033[2J"

// ClearTerminal clears the terminal screen that out is attached to. Windows
// needs cls; everywhere else the ANSI sequence is written directly.
func ClearTerminal(out io.Writer) {
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = out
		if err := cmd.Run(); err == nil {
			return
		}
	}

	fmt.Fprint(out, clearSequence)
}
