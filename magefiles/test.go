//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests of every package.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector and a coverage profile. The
// race detector needs cgo.
func (Test) Race() error {
	_, err := executeCmd("go",
		withArgs("test", "-race", "-coverprofile=coverage.out", "./..."),
		withEnv("CGO_ENABLED=1"),
		withStream())
	return err
}
