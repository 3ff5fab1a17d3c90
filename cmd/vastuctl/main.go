// Command vastuctl manages site content through the JSON API.
//
//	vastuctl login --email admin@example.com
//	vastuctl list services
//	vastuctl create products --file yantra.json
//	vastuctl delete gallery 64b0... --yes
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
