//go:build !windows

package agent

func platformIcon(data []byte) []byte { return data }
