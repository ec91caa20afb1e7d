// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TimerMode 定义计时器的工作模式
type TimerMode int

const (
	// TimerCountDown 倒计时：从时间上限递减到 0
	TimerCountDown TimerMode = iota
	// TimerCountUp 正计时：从 0 开始累加
	TimerCountUp
)

// String 返回计时模式的字符串表示（同时也是配置文件中的写法）
func (m TimerMode) String() string {
	switch m {
	case TimerCountUp:
		return "countUp"
	case TimerCountDown:
		return "countDown"
	default:
		return "unknown"
	}
}

// ParseTimerMode 将配置字符串解析为 TimerMode（不区分大小写）
//
// 参数：
//   - s: "countUp" 或 "countDown"
//
// 返回：
//   - TimerMode: 解析结果
//   - error: 无法识别时返回错误
func ParseTimerMode(s string) (TimerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "countup", "count_up", "up":
		return TimerCountUp, nil
	case "countdown", "count_down", "down":
		return TimerCountDown, nil
	}
	return TimerCountDown, fmt.Errorf("unknown timer mode: %q", s)
}

// MarshalYAML 实现 yaml.Marshaler
func (m TimerMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (m *TimerMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseTimerMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// TimerPrecision 计时器文本显示精度（位集合）
//
// 每一位代表一个时间单位，可以任意组合。
// 格式化时始终按 天 → 时 → 分 → 秒 → 毫秒 的固定顺序输出，
// 与位的存储顺序无关。
type TimerPrecision uint8

const (
	// PrecisionDays 显示天
	PrecisionDays TimerPrecision = 1 << iota
	// PrecisionHours 显示小时
	PrecisionHours
	// PrecisionMinutes 显示分钟
	PrecisionMinutes
	// PrecisionSeconds 显示秒
	PrecisionSeconds
	// PrecisionMilliseconds 显示毫秒
	PrecisionMilliseconds
)

// PrecisionNone 不显示任何单位
const PrecisionNone TimerPrecision = 0

// PrecisionAll 显示全部单位
const PrecisionAll = PrecisionDays | PrecisionHours | PrecisionMinutes | PrecisionSeconds | PrecisionMilliseconds

// precisionOrder 单位的固定输出顺序
var precisionOrder = []struct {
	flag TimerPrecision
	name string
}{
	{PrecisionDays, "days"},
	{PrecisionHours, "hours"},
	{PrecisionMinutes, "minutes"},
	{PrecisionSeconds, "seconds"},
	{PrecisionMilliseconds, "milliseconds"},
}

// Has 判断是否包含指定单位
func (p TimerPrecision) Has(flag TimerPrecision) bool {
	return flag != 0 && p&flag == flag
}

// With 返回加入指定单位后的集合
func (p TimerPrecision) With(flag TimerPrecision) TimerPrecision {
	return p | flag
}

// Without 返回移除指定单位后的集合
func (p TimerPrecision) Without(flag TimerPrecision) TimerPrecision {
	return p &^ flag
}

// Names 按固定顺序返回已启用单位的名称
func (p TimerPrecision) Names() []string {
	names := make([]string, 0, len(precisionOrder))
	for _, u := range precisionOrder {
		if p.Has(u.flag) {
			names = append(names, u.name)
		}
	}
	return names
}

// String 返回形如 "hours|minutes|seconds" 的表示，空集合返回 "none"
func (p TimerPrecision) String() string {
	names := p.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseTimerPrecision 将单位名称列表解析为 TimerPrecision
//
// 名称不区分大小写，支持单数/复数和常见缩写（d/h/m/s/ms）。
// 重复的名称会被合并。
//
// 参数：
//   - names: 单位名称列表，如 ["minutes", "seconds"]
//
// 返回：
//   - TimerPrecision: 合并后的集合
//   - error: 遇到无法识别的名称时返回错误
func ParseTimerPrecision(names []string) (TimerPrecision, error) {
	var p TimerPrecision
	for _, name := range names {
		flag, err := parsePrecisionUnit(name)
		if err != nil {
			return PrecisionNone, err
		}
		p = p.With(flag)
	}
	return p, nil
}

func parsePrecisionUnit(name string) (TimerPrecision, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "days", "day", "d":
		return PrecisionDays, nil
	case "hours", "hour", "h":
		return PrecisionHours, nil
	case "minutes", "minute", "min", "m":
		return PrecisionMinutes, nil
	case "seconds", "second", "sec", "s":
		return PrecisionSeconds, nil
	case "milliseconds", "millisecond", "ms":
		return PrecisionMilliseconds, nil
	case "all":
		return PrecisionAll, nil
	}
	return PrecisionNone, fmt.Errorf("unknown timer precision unit: %q", name)
}

// MarshalYAML 实现 yaml.Marshaler，输出为单位名称列表
func (p TimerPrecision) MarshalYAML() (interface{}, error) {
	return p.Names(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
//
// 支持两种写法：
//
//	precision: [minutes, seconds]
//	precision: "minutes|seconds"
func (p *TimerPrecision) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	switch value.Kind {
	case yaml.SequenceNode:
		if err := value.Decode(&names); err != nil {
			return err
		}
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s != "" && !strings.EqualFold(s, "none") {
			names = strings.Split(s, "|")
		}
	default:
		return fmt.Errorf("timer precision must be a list or a string, line %d", value.Line)
	}

	parsed, err := ParseTimerPrecision(names)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
