package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChristianF88/logfilter/cli"
	"github.com/ChristianF88/logfilter/config"
	"github.com/ChristianF88/logfilter/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.App.Run(os.Args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pipeline.ErrInterrupted):
		return 130
	case isConfigError(err):
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
}

func isConfigError(err error) bool {
	var cfgErr *config.Error
	return errors.As(err, &cfgErr)
}
