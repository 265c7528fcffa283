// Command bitgen compiles bit field layouts and generates pack/unpack code
// for them.
//
// Usage:
//
//	bitgen generate [--check] FILE...
//	bitgen inspect [--json] FILE [TYPE...]
//	bitgen pack FILE TYPE NAME=VALUE...
//	bitgen unpack FILE TYPE WORD
//
// FILE is a Go source file with @bitfield annotated structs, or a YAML, TOML
// or JSON schema file.
package main

import (
	"fmt"
	"os"
)

func main() {
	rc := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := rc.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
