package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/timemanager/pkg/types"
)

// TestDefaultTimeManagerConfig 测试默认值
func TestDefaultTimeManagerConfig(t *testing.T) {
	cfg := DefaultTimeManagerConfig()

	if cfg.TimeScale.TransitionDuration != 0.5 {
		t.Errorf("TransitionDuration = %v, want 0.5", cfg.TimeScale.TransitionDuration)
	}
	if cfg.TimeScale.Initial != 1.0 {
		t.Errorf("Initial = %v, want 1.0", cfg.TimeScale.Initial)
	}
	if !cfg.Timer.StartPaused {
		t.Error("StartPaused should default to true")
	}
	if cfg.Timer.Mode != types.TimerCountDown {
		t.Errorf("Mode = %v, want countDown", cfg.Timer.Mode)
	}
	if cfg.Display.Enabled {
		t.Error("Display should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadTimeManagerConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *TimeManagerConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
timeScale:
  allowInterruption: true
  transitionDuration: 1.5
  easing: easeOutCubic
timer:
  startPaused: false
  mode: countUp
display:
  enabled: true
  precision: [hours, minutes, seconds]
`,
			validate: func(t *testing.T, cfg *TimeManagerConfig) {
				if !cfg.TimeScale.AllowInterruption {
					t.Error("expected allowInterruption = true")
				}
				if cfg.TimeScale.TransitionDuration != 1.5 {
					t.Errorf("expected transitionDuration = 1.5, got %f", cfg.TimeScale.TransitionDuration)
				}
				if cfg.Timer.StartPaused {
					t.Error("expected startPaused = false")
				}
				if cfg.Timer.Mode != types.TimerCountUp {
					t.Errorf("expected mode countUp, got %v", cfg.Timer.Mode)
				}
				want := types.PrecisionHours | types.PrecisionMinutes | types.PrecisionSeconds
				if cfg.Display.Precision != want {
					t.Errorf("expected precision %v, got %v", want, cfg.Display.Precision)
				}
				// 缺省字段保持默认值
				if cfg.TimeScale.Initial != 1.0 {
					t.Errorf("expected default initial 1.0, got %f", cfg.TimeScale.Initial)
				}
			},
		},
		{
			name:        "negative transition duration",
			yamlContent: "timeScale:\n  transitionDuration: -1\n",
			wantErr:     true,
			errContains: "transitionDuration",
		},
		{
			name:        "negative time limit",
			yamlContent: "timer:\n  timeLimit: -30\n",
			wantErr:     true,
			errContains: "timeLimit",
		},
		{
			name:        "negative initial scale",
			yamlContent: "timeScale:\n  initial: -0.5\n",
			wantErr:     true,
			errContains: "initial",
		},
		{
			name:        "unknown easing",
			yamlContent: "timeScale:\n  easing: bounce\n",
			wantErr:     true,
			errContains: "easing",
		},
		{
			name:        "unknown mode",
			yamlContent: "timer:\n  mode: sideways\n",
			wantErr:     true,
			errContains: "parse",
		},
		{
			name:        "NaN time limit",
			yamlContent: "timer:\n  timeLimit: .nan\n",
			wantErr:     true,
			errContains: "timer.timeLimit",
		},
		{
			name:        "infinite transition duration",
			yamlContent: "timeScale:\n  transitionDuration: .inf\n",
			wantErr:     true,
			errContains: "transitionDuration",
		},
		{
			name:        "NaN initial scale",
			yamlContent: "timeScale:\n  initial: .nan\n",
			wantErr:     true,
			errContains: "timeScale.initial",
		},
		{
			name:        "session without app name",
			yamlContent: "session:\n  appName: \"\"\n  save: true\n",
			wantErr:     true,
			errContains: "appName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "time_manager.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			cfg, err := LoadTimeManagerConfig(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadTimeManagerConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

// TestLoadTimeManagerConfig_FileNotFound 测试文件不存在
func TestLoadTimeManagerConfig_FileNotFound(t *testing.T) {
	_, err := LoadTimeManagerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestLoadTimeManagerConfig_ProjectFile 测试项目自带的配置文件
func TestLoadTimeManagerConfig_ProjectFile(t *testing.T) {
	path := filepath.Join("..", "..", DefaultTimeManagerConfigPath)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("project config not found: %v", err)
	}

	cfg, err := LoadTimeManagerConfig(path)
	if err != nil {
		t.Fatalf("project config should load: %v", err)
	}
	if !cfg.Display.Enabled {
		t.Error("project config enables the timer display")
	}
}

// TestTimeManagerConfig_SaveRoundTrip 测试写回磁盘后可以重新加载
func TestTimeManagerConfig_SaveRoundTrip(t *testing.T) {
	cfg := DefaultTimeManagerConfig()
	cfg.Timer.TimeLimit = 45
	cfg.Display.Precision = types.PrecisionSeconds | types.PrecisionMilliseconds

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadTimeManagerConfig(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Timer.TimeLimit != 45 {
		t.Errorf("TimeLimit = %v, want 45", loaded.Timer.TimeLimit)
	}
	if loaded.Display.Precision != cfg.Display.Precision {
		t.Errorf("Precision = %v, want %v", loaded.Display.Precision, cfg.Display.Precision)
	}
}
