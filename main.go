/*
GLKit demo: a small scene with a grid, a light, a few lit meshes and
ImGui panels to poke at the camera and models.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/glkit/engine"
	"github.com/spaghettifunk/glkit/engine/config"
	"github.com/spaghettifunk/glkit/engine/core"
	"github.com/spaghettifunk/glkit/engine/platform/thread"
	"github.com/spaghettifunk/glkit/testbed"
	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.StringP("config", "c", config.DefaultConfigFile, "path to the TOML configuration file")
	assetsDir := flag.String("assets", "", "assets directory, overrides the configuration")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error), overrides the configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// GLFW and OpenGL must be driven from the main OS thread.
	thread.Run(func() {
		if err := run(cfg, *configPath); err != nil {
			core.LogError("%s", err)
			os.Exit(1)
		}
	})
}

func run(cfg *config.ApplicationConfig, configPath string) error {
	app := testbed.NewGLKitApp(cfg, configPath)

	e, err := engine.New(app.Game)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		app.Quit()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
