//go:build !unix

package console

import "os"

// Without SIGWINCH the poll ticker picks up size changes.
func watchResize() (<-chan os.Signal, func()) {
	return nil, func() {}
}
