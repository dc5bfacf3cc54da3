/*
Loads an indexed-face-set scene with its material libraries into
render-ready parts, optionally reloading it whenever its files change.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-scene/engine"
	"github.com/spaghettifunk/anima-scene/engine/core"
)

func main() {
	configPath := flag.String("config", engine.DefaultConfigPath, "path to the TOML config file")
	scene := flag.String("scene", "", "geometry file to load, overrides the config")
	watch := flag.Bool("watch", false, "reload the scene when its files change")
	flag.Parse()

	cfg, err := engine.LoadApplicationConfigOrDefault(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if *scene != "" {
		cfg.Scene = *scene
	}
	if *watch {
		cfg.Watch = true
	}

	e, err := engine.New(cfg)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = e.Shutdown()
	}()

	// run engine
	if err := e.Run(); err != nil {
		core.LogFatal(err.Error())
	}
	_ = e.Shutdown()
}
