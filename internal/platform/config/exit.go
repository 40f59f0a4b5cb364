package config

import (
	"fmt"
	"io"
	"os"
)

var (
	exitOutput io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exitf writes a formatted startup failure to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(exitOutput, format+"\n", args...)
	exitFunc(1)
}
