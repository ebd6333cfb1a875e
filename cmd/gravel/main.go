// Command gravel runs the asset pipeline headless and prints what it
// built. Useful in CI to catch broken exports without opening a window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/hollowbyte/gravel/pipeline"
)

type report struct {
	Levels []levelReport `json:"levels"`
	Sheets []sheetReport `json:"sheets"`
	Errors []string      `json:"errors,omitempty"`
}

type levelReport struct {
	Name     string       `json:"name"`
	Shapes   int          `json:"shapes"`
	Outlines int          `json:"outlines"`
	Events   []eventEntry `json:"events,omitempty"`
}

type eventEntry struct {
	Kind     string     `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Position [2]float64 `json:"position"`
}

type sheetReport struct {
	Name   string   `json:"name"`
	Frames int      `json:"frames"`
	Clips  []string `json:"clips,omitempty"`
}

type collectReporter struct {
	errors []string
}

func (r *collectReporter) ReportError(asset string, err error) {
	r.errors = append(r.errors, fmt.Sprintf("%s: %v", asset, err))
}

func main() {
	configPath := flag.String("config", "preview.yaml", "path to the pipeline config")
	flag.Parse()

	cfg, err := pipeline.LoadConfig[pipeline.Config](*configPath)
	if err != nil {
		log.Fatal(err)
	}

	reporter := &collectReporter{}
	loader := pipeline.NewLoader(cfg.Scale, reporter)

	out := report{}

	data, err := os.ReadFile(cfg.Project)
	if err != nil {
		log.Fatal(err)
	}
	bundles, err := loader.LoadProject(data, cfg.Levels)
	if err != nil {
		log.Fatal(err)
	}
	for _, b := range bundles {
		out.Levels = append(out.Levels, describeLevel(b))
	}

	for _, sc := range cfg.Sheets {
		raw, err := os.ReadFile(sc.Path)
		if err != nil {
			reporter.ReportError(sc.Name, err)
			continue
		}
		sheet, err := loader.LoadSheet(sc.Name, raw)
		if err != nil {
			continue
		}
		sr := sheetReport{Name: sc.Name, Frames: len(sheet.Frames)}
		for name := range sheet.Clips {
			sr.Clips = append(sr.Clips, name)
		}
		sort.Strings(sr.Clips)
		out.Sheets = append(out.Sheets, sr)
	}

	out.Errors = reporter.errors

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
	if len(out.Errors) > 0 {
		os.Exit(1)
	}
}

func describeLevel(b pipeline.LevelBundle) levelReport {
	lr := levelReport{Name: b.Name}
	for _, layer := range b.Layers {
		lr.Shapes += len(layer.Shapes)
		lr.Outlines += len(layer.Outlines)
	}
	for _, evt := range b.Events {
		lr.Events = append(lr.Events, eventEntry{
			Kind:     evt.Kind.String(),
			Name:     evt.Name,
			Position: [2]float64{evt.Position.X, evt.Position.Y},
		})
	}
	return lr
}
