// Command preview opens a window showing the collision geometry and
// animation clips built from a set of level and sprite sheet exports.
// Assets reload on change while the window is open.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hollowbyte/gravel/pipeline"
)

func main() {
	configPath := flag.String("config", "preview.yaml", "path to the preview config")
	debug := flag.Bool("debug", false, "start with collision drawing on")
	flag.Parse()

	cfg, err := pipeline.LoadConfig[pipeline.Config](*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("gravel preview")

	game := NewGame(cfg, *debug)
	defer func() {
		if game.watcher != nil {
			_ = game.watcher.Close()
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
