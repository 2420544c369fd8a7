package main

import (
	"fmt"
	"os"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/cli"
)

// tuiInvocation reports whether this run will land in the full-screen UI,
// where log output on stderr would corrupt the display.
func tuiInvocation(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			return false
		}
	}
	return len(args) == 0 || args[0] == "tui"
}

func main() {
	// If the user asked for help, avoid initializing the full app
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" {
			skipInit = true
			break
		}
	}

	if !skipInit {
		var (
			a   *app.App
			err error
		)
		if tuiInvocation(os.Args[1:]) {
			a, err = app.NewForTUI()
		} else {
			a, err = app.New()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
