package app

import (
	"os"
	"sync"
	"sync/atomic"
)

// TestModeEnv disables side effects that get in the way of in-process tests.
const TestModeEnv = "FLEET_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	testMode.Store(os.Getenv(TestModeEnv) == "1")
}

// InTestMode reports whether FLEET_TEST_MODE=1 was set.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testMode.Load()
}

// RefreshTestMode re-reads the flag after the environment changed.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	detectTestMode()
}
