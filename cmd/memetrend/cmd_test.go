package main

import (
	"bytes"
	"context"
	"testing"
)

// execute runs the root command with args and returns its stdout. Only
// error-level logs are written.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	orig := activeCfg
	t.Cleanup(func() {
		activeCfg = orig
		setupLogger(&bytes.Buffer{}, "info")
	})

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}
