package app

import (
	"os"
	"sync/atomic"
)

const testModeEnv = "CADASTRO_TEST_MODE"

var testMode atomic.Pointer[bool]

// InTestMode reports whether the binary should skip runtime side effects such
// as opening the database. The flag is read once and cached.
func InTestMode() bool {
	if v := testMode.Load(); v != nil {
		return *v
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads CADASTRO_TEST_MODE after environment changes.
func RefreshTestMode() bool {
	v := os.Getenv(testModeEnv) == "1"
	testMode.Store(&v)
	return v
}
