// Command nlcalc is a calculator that understands both symbolic expressions
// and plain-English requests.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "nlcalc:", err)
		stop()
		os.Exit(1)
	}
}

func execute(ctx context.Context, in *os.File, out io.Writer, args []string) error {
	cmd := newRootCmd(in, out)
	cmd.SetArgs(protectNegatives(args))
	return cmd.ExecuteContext(ctx)
}

var negativeNumber = regexp.MustCompile(`^-\.?\d`)

// protectNegatives inserts "--" before the first positional argument that
// starts with a negative number, so "convert -40 celsius fahrenheit" is not
// read as the shorthand flag -4. Flag values such as "--from -5" are left
// alone; flags after the marker are treated as arguments.
func protectNegatives(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if !negativeNumber.MatchString(arg) {
			continue
		}
		if i > 0 && strings.HasPrefix(args[i-1], "-") && !strings.Contains(args[i-1], "=") {
			continue
		}
		out := make([]string, 0, len(args)+1)
		out = append(out, args[:i]...)
		out = append(out, "--")
		return append(out, args[i:]...)
	}
	return args
}
