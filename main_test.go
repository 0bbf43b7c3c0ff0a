package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"blockdoc": root,
	}))
}

// TestBlockdoc tests blockdoc end-to-end using testscript.
// Scripts live in testdata/script.
func TestBlockdoc(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
