package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/hollowbyte/gravel/animation"
	"github.com/hollowbyte/gravel/aseprite"
	"github.com/hollowbyte/gravel/collision"
	"github.com/hollowbyte/gravel/pipeline"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	panSpeed = 6.0
)

type previewSheet struct {
	name    string
	path    string
	sheet   *aseprite.SpriteSheet
	image   *ebiten.Image
	state   *animation.State
	clips   []string
	clipIdx int
}

func (p *previewSheet) cycleClip() {
	if len(p.clips) == 0 {
		return
	}
	p.clipIdx = (p.clipIdx + 1) % len(p.clips)
	p.state.SetClip(p.clips[p.clipIdx], true)
}

type Game struct {
	cfg     pipeline.Config
	loader  *pipeline.Loader
	watcher *pipeline.Watcher

	frames        int
	showCollision bool
	camera        cp.Vector

	space   *cp.Space
	bundles []pipeline.LevelBundle
	sheets  []*previewSheet

	face ebtext.Face
}

func NewGame(cfg pipeline.Config, debug bool) *Game {
	g := &Game{
		cfg:           cfg,
		loader:        pipeline.NewLoader(cfg.Scale, nil),
		showCollision: debug,
		camera:        cp.Vector{X: baseWidth / 4, Y: baseHeight / 2},
		face:          ebtext.NewGoXFace(basicfont.Face7x13),
	}
	g.load()

	watcher, err := pipeline.NewWatcher(g.assetDirs()...)
	if err != nil {
		log.Printf("preview: watch disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g
}

func (g *Game) assetDirs() []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(path string) {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	add(g.cfg.Project)
	for _, s := range g.cfg.Sheets {
		add(s.Path)
	}
	return dirs
}

// load rebuilds everything from the files on disk. Failed assets are
// logged and skipped; whatever loaded stays usable.
func (g *Game) load() {
	data, err := os.ReadFile(g.cfg.Project)
	if err != nil {
		log.Printf("preview: read %s: %v", g.cfg.Project, err)
		return
	}
	bundles, err := g.loader.LoadProject(data, g.cfg.Levels)
	if err != nil {
		return
	}

	space := cp.NewSpace()
	for _, b := range bundles {
		for _, evt := range b.Events {
			log.Printf("preview: %s: spawn %v %q at (%.0f, %.0f)", b.Name, evt.Kind, evt.Name, evt.Position.X, evt.Position.Y)
		}
	}
	for _, b := range bundles {
		collision.AddToSpace(space, b.Layers)
	}
	g.space = space
	g.bundles = bundles

	g.sheets = g.sheets[:0]
	for _, sc := range g.cfg.Sheets {
		raw, err := os.ReadFile(sc.Path)
		if err != nil {
			log.Printf("preview: read %s: %v", sc.Path, err)
			continue
		}
		sheet, err := g.loader.LoadSheet(sc.Name, raw)
		if err != nil {
			continue
		}
		g.sheets = append(g.sheets, newPreviewSheet(sc, sheet))
	}
}

func newPreviewSheet(sc pipeline.SheetConfig, sheet *aseprite.SpriteSheet) *previewSheet {
	ps := &previewSheet{
		name:  sc.Name,
		path:  sc.Path,
		sheet: sheet,
		state: animation.NewState(),
	}
	for name := range sheet.Clips {
		ps.clips = append(ps.clips, name)
	}
	sort.Strings(ps.clips)
	if len(ps.clips) > 0 {
		ps.state.SetClip(ps.clips[0], true)
	}

	if sheet.Image != "" {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(filepath.Dir(sc.Path), sheet.Image))
		if err != nil {
			log.Printf("preview: image for %s: %v", sc.Name, err)
		} else {
			ps.image = img
		}
	}
	return ps
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		reload := false
	drain:
		for {
			select {
			case path, ok := <-g.watcher.Events:
				if !ok {
					break drain
				}
				log.Printf("preview: changed: %s", path)
				reload = true
			default:
				break drain
			}
		}
		if reload {
			g.load()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showCollision = !g.showCollision
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.load()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		for _, ps := range g.sheets {
			ps.cycleClip()
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.X += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.X -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Y += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Y -= panSpeed
	}

	elapsed := 1.0 / float64(ebiten.TPS())
	for _, ps := range g.sheets {
		ps.state.Advance(ps.sheet, elapsed)
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.showCollision && g.space != nil {
		g.drawOutlines(screen)
		cp.DrawSpace(g.space, &spaceDrawer{
			screen: screen,
			scale:  g.scale(),
			origin: g.camera,
		})
	}

	g.drawSheets(screen)
	g.drawHUD(screen)
}

// drawOutlines traces the merged tile outlines in level pixel space,
// before scaling and decomposition, so both stages are visible at once.
func (g *Game) drawOutlines(screen *ebiten.Image) {
	c := color.RGBA{R: 255, G: 140, B: 26, A: 255}
	for _, b := range g.bundles {
		offset := b.Level.WorldOffset()
		for _, layer := range b.Layers {
			for _, outline := range layer.Outlines {
				for i := range outline {
					a := outline[i].Add(offset)
					bb := outline[(i+1)%len(outline)].Add(offset)
					ebitenutil.DrawLine(screen,
						a.X+g.camera.X, -a.Y+g.camera.Y,
						bb.X+g.camera.X, -bb.Y+g.camera.Y, c)
				}
			}
		}
	}
}

func (g *Game) drawSheets(screen *ebiten.Image) {
	x := 16.0
	for _, ps := range g.sheets {
		rect, ok := ps.sheet.FrameRect(ps.state.SheetIndex())
		if !ok || ps.image == nil {
			continue
		}
		sub := ps.image.SubImage(rect).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(2, 2)
		op.GeoM.Translate(x, 48)
		screen.DrawImage(sub, op)
		x += float64(rect.Dx())*2 + 16
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	shapes := 0
	for _, b := range g.bundles {
		for _, layer := range b.Layers {
			shapes += len(layer.Shapes)
		}
	}
	status := fmt.Sprintf("FPS %.1f | levels %d | shapes %d | F1 collision: %v | Tab clip | R reload",
		ebiten.ActualFPS(), len(g.bundles), shapes, g.showCollision)
	for _, ps := range g.sheets {
		status += fmt.Sprintf("\n%s: clip %q frame %d", ps.name, ps.state.Clip(), ps.state.FrameIndex())
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = float64(basicfont.Face7x13.Height)
	ebtext.Draw(screen, status, g.face, op)
}

func (g *Game) scale() float64 {
	if g.cfg.Scale > 0 {
		return g.cfg.Scale
	}
	return 32
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
