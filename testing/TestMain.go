package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

// ensureTestMode keeps binaries in test mode and points the CEP providers at
// an unroutable address so no test reaches the real upstreams.
func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("CADASTRO_TEST_MODE", "1")
		for _, key := range []string{"CEP_PRIMARY_URL", "CEP_FALLBACK_URL"} {
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, "http://127.0.0.1:0")
			}
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
