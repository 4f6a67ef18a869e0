// Package guard switches the binaries into test mode when imported, so a test
// can call main without opening connections.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ODONTIA_TEST_MODE") == "" {
			_ = os.Setenv("ODONTIA_TEST_MODE", "1")
		}
	})
}
