package logging

import (
	"log"
	"sync"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging for the application lifecycle.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled")
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

var onceKeys sync.Map

// Oncef emits a formatted log message at most once per key for the process
// lifetime. A misbehaving accessibility tree can fail the same attribute
// read on thousands of elements per traversal; collapsing the repeats keeps
// the log usable.
func Oncef(key, format string, args ...interface{}) {
	if _, seen := onceKeys.LoadOrStore(key, struct{}{}); seen {
		return
	}
	log.Printf(format, args...)
}
