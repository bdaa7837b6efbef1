// Command showreelctl runs database migrations, offline quotes and admin token minting
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
