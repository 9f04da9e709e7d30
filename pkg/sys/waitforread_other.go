//go:build !unix

package sys

import (
	"os"
	"time"
)

// WaitForRead is not supported on this platform; it reports that nothing is
// ready, so polling for keys never sees one.
func WaitForRead(timeout time.Duration, f *os.File) (bool, error) {
	return false, nil
}
