package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoSnapshot 没有已保存的计时器快照
var ErrNoSnapshot = errors.New("no timer snapshot saved")

// 存储路径常量
const (
	timerSnapshotObject   = "timer"
	timerSnapshotProperty = "session"
)

// TimerSaveManager 计时器存档管理器
// 负责把 TimerSnapshot 以 YAML 格式持久化到 gdata 跨平台存储
type TimerSaveManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	memory       *TimerSnapshot // 降级模式下的内存副本
}

// NewTimerSaveManager 创建计时器存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，快照只保存在内存中）
func NewTimerSaveManager(gdataManager *gdata.Manager) *TimerSaveManager {
	return &TimerSaveManager{gdataManager: gdataManager}
}

// OpenTimerSaveManager 按应用名打开 gdata 存储并创建存档管理器
//
// 打开失败时返回降级模式的管理器和错误，调用方可以选择继续运行
func OpenTimerSaveManager(appName string) (*TimerSaveManager, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return NewTimerSaveManager(nil), fmt.Errorf("failed to open gdata storage %q: %w", appName, err)
	}
	return NewTimerSaveManager(manager), nil
}

// IsPersistent 是否真正持久化到磁盘
func (m *TimerSaveManager) IsPersistent() bool {
	return m.gdataManager != nil
}

// Exists 是否存在已保存的快照
func (m *TimerSaveManager) Exists() bool {
	if m.gdataManager == nil {
		return m.memory != nil
	}
	return m.gdataManager.ObjectPropExists(timerSnapshotObject, timerSnapshotProperty)
}

// Save 保存快照
//
// 返回：
//   - error: 序列化或写入失败时返回错误
func (m *TimerSaveManager) Save(snapshot TimerSnapshot) error {
	if m.gdataManager == nil {
		m.memory = &snapshot
		return nil
	}

	data, err := yaml.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal timer snapshot: %w", err)
	}

	if err := m.gdataManager.SaveObjectProp(timerSnapshotObject, timerSnapshotProperty, data); err != nil {
		return fmt.Errorf("failed to save timer snapshot: %w", err)
	}

	log.Printf("[TimerSaveManager] Snapshot saved (mode=%v, current=%.3f)", snapshot.Mode, snapshot.Current)
	return nil
}

// Load 读取快照
//
// 返回：
//   - *TimerSnapshot: 读取到的快照
//   - error: 不存在时返回 ErrNoSnapshot；读取或反序列化失败时返回错误
func (m *TimerSaveManager) Load() (*TimerSnapshot, error) {
	if !m.Exists() {
		return nil, ErrNoSnapshot
	}

	if m.gdataManager == nil {
		snapshot := *m.memory
		return &snapshot, nil
	}

	data, err := m.gdataManager.LoadObjectProp(timerSnapshotObject, timerSnapshotProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load timer snapshot: %w", err)
	}

	var snapshot TimerSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timer snapshot: %w", err)
	}

	log.Printf("[TimerSaveManager] Snapshot loaded (saved at %s)", snapshot.SavedAt.Format("2006-01-02 15:04:05"))
	return &snapshot, nil
}

// RestoreInto 读取快照并恢复到 TimeManager
//
// 返回：
//   - bool: 是否恢复了快照（不存在时返回 false 且无错误）
//   - error: 读取失败或快照非法时返回错误，TimeManager 状态保持不变
func (m *TimerSaveManager) RestoreInto(tm *TimeManager) (bool, error) {
	snapshot, err := m.Load()
	if errors.Is(err, ErrNoSnapshot) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := tm.Restore(*snapshot); err != nil {
		return false, fmt.Errorf("failed to restore timer snapshot: %w", err)
	}
	return true, nil
}
