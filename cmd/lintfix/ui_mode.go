package main

import (
	"fmt"
	"os"
	"strings"
)

type toggleMode string

const (
	modeAuto toggleMode = "auto"
	modeOn   toggleMode = "on"
	modeOff  toggleMode = "off"
)

func readToggle(flag, value string) (toggleMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on", "always":
		return modeOn, nil
	case "off", "never":
		return modeOff, nil
	default:
		return "", fmt.Errorf("%w: invalid --%s value %q (expected auto|on|off)", errUsage, flag, value)
	}
}

// enabled resolves auto against whether f is a terminal.
func (m toggleMode) enabled(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}
