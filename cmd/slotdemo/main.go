// Command slotdemo is a small terminal application demonstrating the
// registry against a real reactive UI tree: key presses mount and unmount
// plugs, and the view resolves each slot on every frame through memoizing
// resolvers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
