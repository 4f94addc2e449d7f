package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_NoFileGivesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	d := Default()
	if c.Width != d.Width || c.SpawnBatch != d.SpawnBatch || c.Tick != d.Tick || !c.Fog {
		t.Fatalf("loaded %+v, want defaults", c)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slime.yaml")
	data := []byte("width: 128\nheight: 96\ntick: 20ms\nfog: false\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 128 || c.Height != 96 {
		t.Fatalf("grid %dx%d, want 128x96", c.Width, c.Height)
	}
	if c.Tick != 20*time.Millisecond {
		t.Fatalf("tick = %s, want 20ms", c.Tick)
	}
	if c.Fog {
		t.Fatal("fog should be disabled by the file")
	}
	if c.Log.Level != "debug" {
		t.Fatalf("log level = %q", c.Log.Level)
	}
	if c.InitialResources != Default().InitialResources {
		t.Fatal("keys missing from the file keep their defaults")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SLIME_SPAWN_BATCH", "7")
	t.Setenv("SLIME_LOG_LEVEL", "warn")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.SpawnBatch != 7 {
		t.Fatalf("spawn_batch = %d, want 7", c.SpawnBatch)
	}
	if c.Log.Level != "warn" {
		t.Fatalf("log level = %q, want warn", c.Log.Level)
	}
}

func TestLoad_RejectsZeroDimensions(t *testing.T) {
	t.Setenv("SLIME_WIDTH", "0")
	_, err := Load("")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	c := Default()
	c.Height = -1
	c.WallProbability = 2
	c.SpawnBatch = 0
	err := c.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 3 {
		t.Fatalf("expected three joined problems, got %v", err)
	}
}

func TestParams_CarriesValues(t *testing.T) {
	c := Default()
	c.Width, c.Height, c.Seed = 40, 30, 9
	p := c.Params()
	if p.Width != 40 || p.Height != 30 || p.Seed != 9 || p.SpawnBatch != c.SpawnBatch {
		t.Fatalf("params %+v do not match config", p)
	}
}
