//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tidies the module and builds the scene loader binary into bin/.
func (Build) Binary() error {
	mg.Deps(goTidy)
	return goRun(nil, "build", "-o", "bin/anima-scene", ".")
}
