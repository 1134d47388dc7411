package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// interactiveSelect lets the user move through the listed permits with the
// arrow keys and press Enter for the full detail view. keys holds the lookup
// key behind each display line; len(keys)==len(lines).
func interactiveSelect(keys []string, lines []string, askSave bool) {
	if len(keys) == 0 {
		return
	}

	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println("(interactive selection not supported on this terminal)")
		return
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(os.Stdin)

	selected := 0

	redraw := func() {
		// ANSI cursor home + clear screen
		fmt.Print("\033[H\033[2J")
		for i, l := range lines {
			prefix := "  "
			if i == selected {
				prefix = "> "
			}
			fmt.Println(prefix + l)
		}
		fmt.Println("(↑/↓ to navigate, Enter to view details, Esc to quit)")
	}

	// showDetail drops out of raw mode for the detail render, waits for an
	// acknowledgement, and puts the terminal back.
	showDetail := func() bool {
		term.Restore(fd, oldState)
		fmt.Println()
		lookupAndRender(keys[selected], askSave)

		fmt.Print("\n(press Enter to return)")
		_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

		oldState, err = term.MakeRaw(fd)
		if err != nil {
			return false
		}
		reader = bufio.NewReader(os.Stdin)
		redraw()
		return true
	}

	redraw()

	for {
		b1, err := reader.ReadByte()
		if err != nil {
			return
		}
		// Windows console arrow sequences arrive as 0 or 224, then a code.
		if b1 == 0 || b1 == 224 {
			b2, _ := reader.ReadByte()
			switch b2 {
			case 72: // up
				if selected > 0 {
					selected--
					redraw()
				}
			case 80: // down
				if selected < len(keys)-1 {
					selected++
					redraw()
				}
			case 13: // Enter
				if !showDetail() {
					return
				}
			}
			continue
		}

		switch b1 {
		case 27: // ESC or start of an ANSI sequence
			if reader.Buffered() == 0 {
				// Bare ESC, exit
				fmt.Println()
				return
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' {
				continue
			}
			if reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			switch b3 {
			case 'A': // up
				if selected > 0 {
					selected--
					redraw()
				}
			case 'B': // down
				if selected < len(keys)-1 {
					selected++
					redraw()
				}
			}
		case '\r', '\n': // Enter
			if !showDetail() {
				return
			}
		case 3: // Ctrl-C
			fmt.Println()
			return

		default:
			// ignore other keys
		}
	}
}
