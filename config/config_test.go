package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Driver.SdataLimit != 0 {
		t.Errorf("expected SdataLimit=0, got %d", cfg.Driver.SdataLimit)
	}
	if !cfg.Driver.ExpandDiv {
		t.Error("expected ExpandDiv=true")
	}
	if cfg.Driver.GNUASPath == "" {
		t.Error("expected a non-empty default assembler path")
	}
	if cfg.Driver.NoMacroInc {
		t.Error("expected NoMacroInc=false by default")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom on a missing file should not error: %v", err)
	}
	if cfg.Driver.SdataLimit != DefaultConfig().Driver.SdataLimit {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maspsx.toml")

	cfg := DefaultConfig()
	cfg.Driver.SdataLimit = 8
	cfg.Driver.ExpandDiv = false
	cfg.Driver.GNUASPath = "/opt/toolchain/bin/mips-as"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Driver.SdataLimit != 8 {
		t.Errorf("expected SdataLimit=8, got %d", loaded.Driver.SdataLimit)
	}
	if loaded.Driver.ExpandDiv {
		t.Error("expected ExpandDiv=false after round trip")
	}
	if loaded.Driver.GNUASPath != "/opt/toolchain/bin/mips-as" {
		t.Errorf("expected GNUASPath to round-trip, got %q", loaded.Driver.GNUASPath)
	}
}

func TestGetConfigPathIsStable(t *testing.T) {
	p1 := GetConfigPath()
	p2 := GetConfigPath()
	if p1 != p2 {
		t.Errorf("GetConfigPath should be stable across calls: %q != %q", p1, p2)
	}
}
