package pipeline

import (
	"log"

	"github.com/hollowbyte/gravel/aseprite"
	"github.com/hollowbyte/gravel/collision"
	"github.com/hollowbyte/gravel/ldtk"
)

// Reporter receives per-asset load failures. A failed level or sheet is
// reported and skipped; unrelated assets keep loading.
type Reporter interface {
	ReportError(asset string, err error)
}

type logReporter struct{}

func (logReporter) ReportError(asset string, err error) {
	log.Printf("pipeline: %s: %v", asset, err)
}

// Loader runs parse and geometry builds for configured assets. One build
// pass per load-completion; it never retries on its own.
type Loader struct {
	scale    float64
	reporter Reporter
}

// NewLoader creates a loader. scale is pixels per world unit (0 for the
// default); a nil reporter logs failures.
func NewLoader(scale float64, reporter Reporter) *Loader {
	if scale <= 0 {
		scale = collision.WorldScale
	}
	if reporter == nil {
		reporter = logReporter{}
	}
	return &Loader{scale: scale, reporter: reporter}
}

// LevelBundle is everything one built level hands to its collaborators:
// the raw level for rendering, collision shapes for physics, and spawn
// events for gameplay, in production order.
type LevelBundle struct {
	Name   string
	Level  *ldtk.Level
	Layers []collision.LayerShapes
	Events []ldtk.SpawnEvent
}

// LoadProject parses a level export and builds every requested level.
// A malformed export aborts the whole asset. A level that fails to build
// is reported and omitted from the result.
func (l *Loader) LoadProject(data []byte, identifiers []string) ([]LevelBundle, error) {
	if l == nil {
		return nil, nil
	}
	project, err := ldtk.Parse(data)
	if err != nil {
		l.reporter.ReportError("project", err)
		return nil, err
	}

	var bundles []LevelBundle
	for _, id := range identifiers {
		bundle, err := l.buildLevel(project, id)
		if err != nil {
			l.reporter.ReportError(id, err)
			continue
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, nil
}

func (l *Loader) buildLevel(project *ldtk.Project, identifier string) (*LevelBundle, error) {
	level, err := project.Level(identifier)
	if err != nil {
		return nil, err
	}

	queue := &ldtk.EventQueue{}
	if err := ldtk.ScanEntities(level, queue); err != nil {
		return nil, err
	}

	tilesets, err := project.ResolveTilesets(level)
	if err != nil {
		return nil, err
	}
	layers, err := collision.BuildLevel(level, tilesets, l.scale)
	if err != nil {
		return nil, err
	}

	return &LevelBundle{
		Name:   identifier,
		Level:  level,
		Layers: layers,
		Events: queue.Drain(),
	}, nil
}

// LoadSheet parses one sprite sheet export. A failure is reported and
// returned; the caller leaves the sheet absent.
func (l *Loader) LoadSheet(name string, data []byte) (*aseprite.SpriteSheet, error) {
	if l == nil {
		return nil, nil
	}
	sheet, err := aseprite.Parse(data)
	if err != nil {
		l.reporter.ReportError(name, err)
		return nil, err
	}
	return sheet, nil
}
