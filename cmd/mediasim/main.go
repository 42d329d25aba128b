package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Interrupted runs already logged their partial summary; the
		// artifact tree resumes cleanly on the next invocation.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "mediasim:", err)
		}
		os.Exit(1)
	}
}
