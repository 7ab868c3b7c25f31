//go:build !windows && !linux

package desktop

import "fmt"

func newPlatformBackend() (Backend, error) {
	return nil, fmt.Errorf("no desktop backend available on this platform")
}

func switcherClassSubstrings() []string { return nil }

func switcherExactClasses() []string { return nil }
