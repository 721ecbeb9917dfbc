package config

import (
	"sync"
	"testing"
)

func resetSingleton() {
	SetConfig(nil)
	initOnce = sync.Once{}
}

func TestInitialize(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	t.Setenv("TOOL_NAME", "singleton-tool")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected config after Initialize")
	}
	if cfg.Tools.ToolName != "singleton-tool" {
		t.Errorf("expected tool name from env, got %q", cfg.Tools.ToolName)
	}

	// Second call is a no-op.
	t.Setenv("TOOL_NAME", "other")
	if err := Initialize(""); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if GetConfig() != cfg {
		t.Error("expected Initialize to run only once")
	}
}

func TestReloadConfig(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	path := writeConfig(t, "tools:\n  tool_name: before\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	path2 := writeConfig(t, "tools:\n  tool_name: after\n")
	cfg, err := ReloadConfig(path2)
	if err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	if cfg.Tools.ToolName != "after" || GetConfig().Tools.ToolName != "after" {
		t.Errorf("expected reloaded tool name, got %q", GetConfig().Tools.ToolName)
	}

	bad := writeConfig(t, "convert:\n  max_merge_files: 1\n")
	if _, err := ReloadConfig(bad); err == nil {
		t.Fatal("expected reload error")
	}
	if GetConfig().Tools.ToolName != "after" {
		t.Error("failed reload must keep the previous configuration")
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when configuration is not initialized")
		}
	}()
	MustGetConfig()
}
