package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hollowbyte/gravel/ldtk"
)

const testProject = `{
	"levels": [
		{
			"identifier": "Level_0",
			"worldX": 0,
			"worldY": 0,
			"layerInstances": [
				{
					"__type": "Entities",
					"__gridSize": 16,
					"__tilesetDefUid": null,
					"entityInstances": [
						{"__identifier": "PlayerStart", "px": [8, 8], "fieldInstances": []}
					],
					"gridTiles": []
				},
				{
					"__type": "Tiles",
					"__gridSize": 16,
					"__tilesetDefUid": 1,
					"entityInstances": [],
					"gridTiles": [
						{"px": [0, 0], "t": 0},
						{"px": [16, 0], "t": 0}
					]
				}
			]
		}
	],
	"defs": {
		"tilesets": [
			{
				"uid": 1,
				"tileGridSize": 16,
				"__cWid": 2,
				"__cHei": 2,
				"relPath": "tiles.png",
				"customData": [
					{"tileId": 0, "data": "[[0,0],[1,0],[1,1],[0,1]]"}
				]
			}
		]
	}
}`

type recordingReporter struct {
	assets []string
}

func (r *recordingReporter) ReportError(asset string, err error) {
	r.assets = append(r.assets, asset)
}

func TestLoadProject(t *testing.T) {
	reporter := &recordingReporter{}
	loader := NewLoader(16, reporter)

	bundles, err := loader.LoadProject([]byte(testProject), []string{"Level_0"})
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(bundles) != 1 {
		t.Fatalf("expected 1 bundle, got %d", len(bundles))
	}

	b := bundles[0]
	if b.Name != "Level_0" || b.Level == nil {
		t.Fatalf("bundle: %+v", b)
	}
	if len(b.Events) != 1 || b.Events[0].Kind != ldtk.SpawnPlayer {
		t.Fatalf("events: %+v", b.Events)
	}
	if len(b.Layers) != 1 || len(b.Layers[0].Shapes) == 0 {
		t.Fatalf("collision layers: %+v", b.Layers)
	}
	if len(reporter.assets) != 0 {
		t.Fatalf("nothing should have been reported, got %v", reporter.assets)
	}
}

func TestLoadProjectSkipsFailedLevels(t *testing.T) {
	reporter := &recordingReporter{}
	loader := NewLoader(16, reporter)

	bundles, err := loader.LoadProject([]byte(testProject), []string{"Level_404", "Level_0"})
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(bundles) != 1 || bundles[0].Name != "Level_0" {
		t.Fatalf("the good level should still load, got %+v", bundles)
	}
	if len(reporter.assets) != 1 || reporter.assets[0] != "Level_404" {
		t.Fatalf("the bad level should be reported, got %v", reporter.assets)
	}
}

func TestLoadProjectMalformed(t *testing.T) {
	reporter := &recordingReporter{}
	loader := NewLoader(0, reporter)

	_, err := loader.LoadProject([]byte("not json"), []string{"Level_0"})
	if !errors.Is(err, ldtk.ErrMalformedAsset) {
		t.Fatalf("expected ErrMalformedAsset, got %v", err)
	}
	if len(reporter.assets) != 1 {
		t.Fatalf("malformed project should be reported, got %v", reporter.assets)
	}
}

func TestLoadSheet(t *testing.T) {
	loader := NewLoader(0, &recordingReporter{})
	sheet, err := loader.LoadSheet("hero", []byte(`{
		"frames": {"hero 0.aseprite": {"frame": {"x":0,"y":0,"w":8,"h":8}, "duration": 100}},
		"meta": {"image": "hero.png", "size": {"w":8,"h":8}, "frameTags": [], "layers": [], "slices": []}
	}`))
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if len(sheet.Frames) != 1 {
		t.Fatalf("sheet frames: %+v", sheet.Frames)
	}

	if _, err := loader.LoadSheet("broken", []byte("nope")); err == nil {
		t.Fatal("broken sheet should fail")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preview.yaml")
	contents := []byte("project: assets/levels.ldtk\nlevels:\n  - Level_0\nscale: 32\nsheets:\n  - name: hero\n    path: assets/hero.json\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig[Config](path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Project != "assets/levels.ldtk" || cfg.Scale != 32 {
		t.Fatalf("config: %+v", cfg)
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0] != "Level_0" {
		t.Fatalf("levels: %v", cfg.Levels)
	}
	if len(cfg.Sheets) != 1 || cfg.Sheets[0].Name != "hero" {
		t.Fatalf("sheets: %+v", cfg.Sheets)
	}

	if _, err := LoadConfig[Config](filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("missing config should fail")
	}
}
