// Command scrapctl maintains a scrap tracker store from the shell: applying
// migrations, taking and restoring backups, and hashing the sign-in password.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
