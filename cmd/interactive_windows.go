//go:build windows
// +build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVT switches the console into virtual terminal mode so arrow-key
// escape sequences reach us and our ANSI colors render.
func enableVT() {
	setConsoleBit(windows.Handle(os.Stdin.Fd()), windows.ENABLE_VIRTUAL_TERMINAL_INPUT)
	setConsoleBit(windows.Handle(os.Stdout.Fd()), windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}

func setConsoleBit(h windows.Handle, bit uint32) {
	var mode uint32
	if windows.GetConsoleMode(h, &mode) == nil {
		windows.SetConsoleMode(h, mode|bit)
	}
}
