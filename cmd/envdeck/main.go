package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/envdeck/internal/envctl"
	"github.com/DaanHessen/envdeck/internal/preset"
	"github.com/DaanHessen/envdeck/internal/ui"
	"github.com/DaanHessen/envdeck/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	storePath := flag.String("store", os.Getenv("ENVDECK_STORE"), "Path to the preset store file")
	theme := flag.String("theme", os.Getenv("ENVDECK_THEME"), "Color theme: dark|light")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "envdeck [--store FILE] [--theme dark|light] | version\n")
		fmt.Fprintf(os.Stderr, "default store: %s\n", defaultStorePath())
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(flag.Args()) > 0 && flag.Args()[0] == "version" {
		fmt.Println("envdeck", version)
		return
	}

	path := *storePath
	if path == "" {
		path = defaultStorePath()
	}
	if *theme == "" {
		*theme = "dark"
	}

	st := preset.NewStore(path)
	presets, err := st.Load()
	if err != nil {
		if errors.Is(err, preset.ErrCorruptStore) {
			// Never discard the user's file; tell them and stop.
			log.Fatalf("%v\nfix the file by hand or move it out of the way; envdeck will not overwrite it", err)
		}
		log.Fatalf("failed to load preset store: %v", err)
	}

	cfg := util.Config{
		StorePath: path,
		Theme:     *theme,
		Version:   version,
	}

	if err := ui.Run(context.Background(), st, presets, envctl.NewApplier(), cfg); err != nil {
		log.Fatal(err)
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "envdeck.json"
	}
	return filepath.Join(dir, "envdeck", "presets.json")
}
