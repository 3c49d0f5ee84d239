//go:build !darwin || !cgo

package agent

func hideFromDock() {}
