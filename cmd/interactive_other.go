//go:build !windows
// +build !windows

package main

// enableVT is a no-op off Windows; VT sequences work natively there.
func enableVT() {}
