//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// goRun runs the go tool with the extra environment, streaming its output.
func goRun(env map[string]string, args ...string) error {
	fmt.Printf("Executing: %s %s\n", mg.GoCmd(), strings.Join(args, " "))
	if err := sh.RunWithV(env, mg.GoCmd(), args...); err != nil {
		return fmt.Errorf("go %s: %w", args[0], err)
	}
	return nil
}

func goTidy() error {
	if err := sh.Run(mg.GoCmd(), "mod", "tidy"); err != nil {
		return fmt.Errorf("failed to run go mod tidy: %w", err)
	}
	return nil
}
