package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			// Interrupted mid-render; partial intermediates stay in the
			// work dir and the next run resumes from the job record.
			return 130
		}
		fmt.Fprintln(os.Stderr, "bookreel:", err)
		return 1
	}
	return 0
}
