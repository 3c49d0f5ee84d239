//go:build windows

package main

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

func init() {
	if shouldShowConsole(os.Args[1:]) {
		return
	}
	hideConsoleWindow()
}

// shouldShowConsole keeps the console attached for one-shot commands and
// for anyone who asks; only the resident agent hides it.
func shouldShowConsole(args []string) bool {
	if os.Getenv("GOMENU_SHOW_CONSOLE") != "" {
		return true
	}

	for _, raw := range args {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if trimmed[0] == '-' || trimmed[0] == '/' {
			continue
		}
		switch strings.ToLower(trimmed) {
		case "agent":
			return false
		default:
			// list, search, run, trust and anything else print output.
			return true
		}
	}
	return false
}

func hideConsoleWindow() {
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	user32 := windows.NewLazySystemDLL("user32.dll")

	getConsoleWindow := kernel32.NewProc("GetConsoleWindow")
	showWindow := user32.NewProc("ShowWindow")
	freeConsole := kernel32.NewProc("FreeConsole")

	hwnd, _, _ := getConsoleWindow.Call()
	if hwnd == 0 {
		return
	}

	const swHide = 0
	showWindow.Call(hwnd, swHide)
	freeConsole.Call()
}
