package config

import (
	"fmt"
	"os"

	"github.com/decker502/timemanager/pkg/types"
	"github.com/decker502/timemanager/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultTimeManagerConfigPath 默认配置文件路径（同时嵌入到二进制中）
const DefaultTimeManagerConfigPath = "data/time_manager.yaml"

// TimeManagerConfig 时间管理器配置
//
// 对应策划在编辑器中填写的初始值，控制器启动前读取一次。
//
// 配置文件位置: data/time_manager.yaml
type TimeManagerConfig struct {
	// TimeScale 时间缩放过渡配置
	TimeScale TimeScaleConfig `yaml:"timeScale"`

	// Timer 计时器配置
	Timer TimerConfig `yaml:"timer"`

	// Display 计时器文本显示配置
	Display DisplayConfig `yaml:"display"`

	// Session 会话存档配置
	Session SessionConfig `yaml:"session"`
}

// TimeScaleConfig 时间缩放过渡配置
type TimeScaleConfig struct {
	// AllowInterruption 是否允许新请求打断正在进行的过渡
	AllowInterruption bool `yaml:"allowInterruption"`

	// TransitionDuration 过渡时长（秒，真实时间），必须 >= 0
	TransitionDuration float64 `yaml:"transitionDuration"`

	// Easing 过渡曲线名称，默认 "linear"
	Easing string `yaml:"easing"`

	// Initial 启动时的全局时间缩放，必须 >= 0
	Initial float64 `yaml:"initial"`
}

// TimerConfig 计时器配置
type TimerConfig struct {
	// StartPaused 启动时是否暂停
	StartPaused bool `yaml:"startPaused"`

	// Mode 计时模式：countUp / countDown
	Mode types.TimerMode `yaml:"mode"`

	// TimeLimit 倒计时上限（秒），必须 >= 0
	TimeLimit float64 `yaml:"timeLimit"`
}

// DisplayConfig 计时器文本显示配置
type DisplayConfig struct {
	// Enabled 是否每帧生成显示文本
	Enabled bool `yaml:"enabled"`

	// Precision 显示的时间单位，如 [minutes, seconds]
	Precision types.TimerPrecision `yaml:"precision"`
}

// SessionConfig 会话存档配置
type SessionConfig struct {
	// AppName gdata 存储使用的应用名
	AppName string `yaml:"appName"`

	// Restore 启动时是否恢复上次退出时的计时器状态
	Restore bool `yaml:"restore"`

	// Save 退出时是否保存计时器状态
	Save bool `yaml:"save"`
}

// DefaultTimeManagerConfig 返回默认配置
// 配置文件中缺省的字段保持这里的默认值
func DefaultTimeManagerConfig() *TimeManagerConfig {
	return &TimeManagerConfig{
		TimeScale: TimeScaleConfig{
			AllowInterruption:  false,
			TransitionDuration: 0.5,
			Easing:             "linear",
			Initial:            1.0,
		},
		Timer: TimerConfig{
			StartPaused: true,
			Mode:        types.TimerCountDown,
			TimeLimit:   0,
		},
		Display: DisplayConfig{
			Enabled:   false,
			Precision: types.PrecisionMinutes | types.PrecisionSeconds,
		},
		Session: SessionConfig{
			AppName: "timemanager",
			Restore: false,
			Save:    false,
		},
	}
}

// LoadTimeManagerConfig 从磁盘加载时间管理器配置
//
// 参数:
//   - path: 配置文件路径（如 "data/time_manager.yaml"）
//
// 返回:
//   - *TimeManagerConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadTimeManagerConfig(path string) (*TimeManagerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read time manager config: %w", err)
	}
	return LoadTimeManagerConfigFromBytes(data)
}

// LoadTimeManagerConfigFromBytes 从内存数据加载配置（用于嵌入资源）
func LoadTimeManagerConfigFromBytes(data []byte) (*TimeManagerConfig, error) {
	config := DefaultTimeManagerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse time manager config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid time manager config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 过渡时长、初始缩放、倒计时上限必须是有限的非负数
//   - 缓动名称必须可识别
//   - 启用存档时必须提供应用名
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *TimeManagerConfig) Validate() error {
	if !utils.IsFinite(c.TimeScale.TransitionDuration) || c.TimeScale.TransitionDuration < 0 {
		return fmt.Errorf("timeScale.transitionDuration must be finite and >= 0, got %.3f", c.TimeScale.TransitionDuration)
	}
	if !utils.IsFinite(c.TimeScale.Initial) || c.TimeScale.Initial < 0 {
		return fmt.Errorf("timeScale.initial must be finite and >= 0, got %.3f", c.TimeScale.Initial)
	}
	if _, err := utils.EasingByName(c.TimeScale.Easing); err != nil {
		return fmt.Errorf("timeScale.easing: %w", err)
	}
	if !utils.IsFinite(c.Timer.TimeLimit) || c.Timer.TimeLimit < 0 {
		return fmt.Errorf("timer.timeLimit must be finite and >= 0, got %.3f", c.Timer.TimeLimit)
	}
	if (c.Session.Restore || c.Session.Save) && c.Session.AppName == "" {
		return fmt.Errorf("session.appName is required when session restore/save is enabled")
	}
	return nil
}

// Save 将配置写回磁盘
func (c *TimeManagerConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal time manager config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write time manager config: %w", err)
	}
	return nil
}
