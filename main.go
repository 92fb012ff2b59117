package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/rmdl/go-diorama-raytracer/pkg/renderer"
	"github.com/rmdl/go-diorama-raytracer/pkg/scene"
	"github.com/rmdl/go-diorama-raytracer/pkg/termview"
)

func main() {
	// .env supplies defaults; flags win
	_ = godotenv.Load()

	scenePath := flag.String("scene", envString("DIORAMA_SCENE", ""), "Path to a TOML scene file (empty renders the built-in diorama)")
	fps := flag.Int("fps", envInt("DIORAMA_FPS", 30), "Target frames per second")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Diorama Raytracer")
		fmt.Println("Usage: diorama [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Controls:")
		fmt.Println("  Left/Right  - Orbit around the scene")
		fmt.Println("  W/S         - Orbit up/down")
		fmt.Println("  Up/Down     - Zoom in/out")
		fmt.Println("  A/D         - Pan left/right")
		fmt.Println("  Q/E         - Pan up/down")
		fmt.Println("  Esc         - Quit")
		return
	}

	if err := run(*scenePath, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string, fps int) error {
	var (
		s      *scene.Scene
		camera *renderer.Camera
		fov    float64
		err    error
	)
	if scenePath != "" {
		s, camera, fov, err = scene.LoadSceneFile(scenePath, renderer.NewDefaultLogger())
		if err != nil {
			return err
		}
	} else {
		s, camera = scene.NewDefaultScene()
	}

	viewer, err := termview.NewViewer(s, camera, fov, fps)
	if err != nil {
		return err
	}
	return viewer.Run()
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
