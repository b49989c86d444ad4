package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/farmvale/pkg/types"
)

// ErrNoSave 存档槽为空
var ErrNoSave = errors.New("no save data")

// SaveData 存档内容
//
// 只保存跨天延续的经济数据：天数、金钱、物品和种子。
// 农田网格每天由布局重建，不进入存档。
type SaveData struct {
	Day     int            `yaml:"day"`
	Money   int            `yaml:"money"`
	Items   map[string]int `yaml:"items"`
	Seeds   map[string]int `yaml:"seeds"`
	SavedAt time.Time      `yaml:"savedAt"`
}

// NewSaveData 从背包生成存档
func NewSaveData(day int, inv *Inventory) *SaveData {
	data := &SaveData{
		Day:   day,
		Money: inv.Money,
		Items: make(map[string]int, len(inv.Items)),
		Seeds: make(map[string]int, len(inv.Seeds)),
	}
	for item, n := range inv.Items {
		data.Items[item.String()] = n
	}
	for p, n := range inv.Seeds {
		data.Seeds[p.String()] = n
	}
	return data
}

// ApplyTo 把存档写回背包
// 存档中的未知名称返回 ErrUnknownItem，已写入的部分保留。
func (d *SaveData) ApplyTo(inv *Inventory) error {
	inv.Money = d.Money
	for name, n := range d.Items {
		item, err := types.ParseItemType(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownItem, err)
		}
		inv.Items[item] = n
	}
	for name, n := range d.Seeds {
		p, err := types.ParsePlantType(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownItem, err)
		}
		inv.Seeds[p] = n
	}
	return nil
}

const saveObject = "save"

// SaveManager 存档管理器
//
// 每个存档槽对应 gdata 中 save 对象的一个属性。
// gdataManager 为 nil 时存档只保留在内存中（进程退出即丢失）。
type SaveManager struct {
	gdataManager *gdata.Manager
	slot         string
	memory       map[string][]byte
	logger       *log.Logger
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 存储，可为 nil（降级模式）
//   - slot: 存档槽名称，为空时使用 "slot1"
func NewSaveManager(gdataManager *gdata.Manager, slot string) *SaveManager {
	if slot == "" {
		slot = "slot1"
	}
	sm := &SaveManager{
		gdataManager: gdataManager,
		slot:         slot,
		memory:       make(map[string][]byte),
		logger:       log.WithPrefix("SaveManager"),
	}
	if gdataManager == nil {
		sm.logger.Warn("no persistent storage, saves are kept in memory only")
	}
	return sm
}

// Slot 返回当前存档槽
func (sm *SaveManager) Slot() string {
	return sm.slot
}

// HasSave 检查当前存档槽是否有数据
func (sm *SaveManager) HasSave() bool {
	if sm.gdataManager == nil {
		_, ok := sm.memory[sm.slot]
		return ok
	}
	return sm.gdataManager.ObjectPropExists(saveObject, sm.slot)
}

// Save 写入存档，SavedAt 为空时填入当前时间
func (sm *SaveManager) Save(data *SaveData) error {
	if data.SavedAt.IsZero() {
		data.SavedAt = time.Now()
	}
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}
	if sm.gdataManager == nil {
		sm.memory[sm.slot] = raw
		return nil
	}
	if err := sm.gdataManager.SaveObjectProp(saveObject, sm.slot, raw); err != nil {
		return fmt.Errorf("save slot %s: %w", sm.slot, err)
	}
	sm.logger.Debug("saved", "slot", sm.slot, "day", data.Day, "money", data.Money)
	return nil
}

// Load 读取存档，槽为空时返回 ErrNoSave
func (sm *SaveManager) Load() (*SaveData, error) {
	if !sm.HasSave() {
		return nil, ErrNoSave
	}

	var raw []byte
	if sm.gdataManager == nil {
		raw = sm.memory[sm.slot]
	} else {
		var err error
		raw, err = sm.gdataManager.LoadObjectProp(saveObject, sm.slot)
		if err != nil {
			return nil, fmt.Errorf("load slot %s: %w", sm.slot, err)
		}
	}

	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal slot %s: %w", sm.slot, err)
	}
	if data.Day < 1 {
		data.Day = 1
	}
	return &data, nil
}

// Delete 清空当前存档槽
func (sm *SaveManager) Delete() error {
	if sm.gdataManager == nil {
		delete(sm.memory, sm.slot)
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(saveObject, sm.slot) {
		return nil
	}
	if err := sm.gdataManager.DeleteObjectProp(saveObject, sm.slot); err != nil {
		return fmt.Errorf("delete slot %s: %w", sm.slot, err)
	}
	return nil
}
