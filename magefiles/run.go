//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo with the configuration in glkit.toml.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "--config", "glkit.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the demo with debug logging and shader hot-reload forced on.
func (Run) Debug() error {
	if _, err := executeCmd("go",
		withArgs("run", ".", "--config", "glkit.toml"),
		withEnv("GLKIT_LOG_LEVEL=debug", "GLKIT_WATCH_ASSETS=true"),
		withStream()); err != nil {
		return err
	}
	return nil
}
