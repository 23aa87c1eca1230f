package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	mandel "github.com/marben/mandelzoom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mandelzoom.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Bounds() != mandel.DefaultBounds {
		t.Errorf("Bounds() = %s, want %s", cfg.Bounds(), mandel.DefaultBounds)
	}
	v, err := cfg.Viewport()
	if err != nil || v != mandel.DefaultViewport {
		t.Errorf("Viewport() = %s, %v, want %s", v, err, mandel.DefaultViewport)
	}
	if r := cfg.Renderer(); r.Workers != 0 || r.Limit != mandel.DefaultIterationLimit {
		t.Errorf("Renderer() = %+v", r)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q): %v", path, err)
		}
		if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
			t.Errorf("LoadConfig(%q) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
  height: 480
view:
  region: seahorse-valley
render:
  workers: 3
  iterationLimit: 100
  sync: true
server:
  addr: "127.0.0.1:9000"
  originPatterns: ["localhost:*"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Window.Width = 640
	want.Window.Height = 480
	want.View.Region = "seahorse-valley"
	want.Render.Workers = 3
	want.Render.IterationLimit = 100
	want.Render.Sync = true
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.OriginPatterns = []string{"localhost:*"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}

	v, err := cfg.Viewport()
	if err != nil || v != mandel.Regions["seahorse-valley"] {
		t.Errorf("Viewport() = %s, %v", v, err)
	}
}

func TestViewportCorners(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View.Region = "no such region"
	cfg.View.UpperLeft = "-1.5,1"
	cfg.View.LowerRight = "0.5,-1"

	v, err := cfg.Viewport()
	if err != nil {
		t.Fatal(err)
	}
	want := mandel.Viewport{UpperLeft: complex(-1.5, 1), LowerRight: complex(0.5, -1)}
	if v != want {
		t.Errorf("Viewport() = %s, want %s", v, want)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name, body, msg string
	}{
		{"unknown region", "view:\n  region: atlantis\n", "unknown region"},
		{"inverted view", "view:\n  upperLeft: \"1,-1\"\n  lowerRight: \"-1,1\"\n", "upper left"},
		{"half a view", "view:\n  upperLeft: \"-1,1\"\n", "lowerRight"},
		{"empty window", "window:\n  width: 0\n", "window size"},
		{"negative workers", "render:\n  workers: -2\n", "workers"},
		{"not yaml", "window: [", "parsing config file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("LoadConfig succeeded")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}
