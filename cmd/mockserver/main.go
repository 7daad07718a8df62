// Command mockserver serves the fixture API used by the fetch end-to-end
// tests.
//
//	mockserver serve --port 3000
//	mockserver sign --sub alice --role admin
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
