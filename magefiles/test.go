//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package's tests.
func (Test) All() error {
	return goRun(nil, "test", "./...")
}

// Runs the tests with the race detector, covering the watcher and caches.
func (Test) Race() error {
	return goRun(map[string]string{"CGO_ENABLED": "1"}, "test", "-race", "./engine/...")
}
