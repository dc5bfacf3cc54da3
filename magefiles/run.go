//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Loads the scene configured in anima.toml once.
func (Run) Scene() error {
	return goRun(nil, "run", ".", "-config", "anima.toml")
}

// Loads the configured scene and reloads it on every change.
func (Run) Watch() error {
	return goRun(nil, "run", ".", "-config", "anima.toml", "-watch")
}
