package scenes

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/farmvale/pkg/game"
	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/systems"
	"github.com/decker502/farmvale/pkg/types"
	"github.com/decker502/farmvale/pkg/world"
)

// 镜头平滑系数（每秒靠近剩余距离的比例）
const cameraFollow = 8.0

// DayRecorder 记录每天的汇总（农场日志）
type DayRecorder interface {
	RecordDay(rec storage.DayRecord) (int64, error)
}

// FarmSceneDeps 农场场景的依赖，除 World 外都可以为 nil
type FarmSceneDeps struct {
	World    *world.World
	Audio    *game.AudioManager
	Settings *game.SettingsManager
	Saves    *game.SaveManager
	Journal  DayRecorder

	ViewWidth  int
	ViewHeight int
}

// FarmScene 农场主场景
//
// 每帧：读取键盘 → 推进世界 → 镜头跟随玩家。
// 玩家在床上请求睡觉时播放淡出转场，全黑时换日、写日志、自动存档，再淡入。
type FarmScene struct {
	world    *world.World
	camera   *systems.CameraSystem
	audio    *game.AudioManager
	settings *game.SettingsManager
	saves    *game.SaveManager
	journal  DayRecorder
	keys     keyState

	viewW, viewH int
	shopOpen     bool
	shopMessage  string
	sleep        sleepTransition
	lastSummary  *world.DaySummary

	logger *log.Logger
}

// NewFarmScene 创建农场场景
func NewFarmScene(deps FarmSceneDeps) *FarmScene {
	s := &FarmScene{
		world:    deps.World,
		audio:    deps.Audio,
		settings: deps.Settings,
		saves:    deps.Saves,
		journal:  deps.Journal,
		keys:     ebitenKeys,
		viewW:    deps.ViewWidth,
		viewH:    deps.ViewHeight,
		logger:   log.WithPrefix("FarmScene"),
	}
	s.camera = systems.NewCameraSystem(s.world.EntityManager(), float64(s.viewW), float64(s.viewH), cameraFollow, s.world.Bounds())
	s.camera.Snap(s.world.Player().Center())
	if s.audio != nil {
		s.audio.PlayMusic()
	}
	return s
}

// Update 推进一帧
func (s *FarmScene) Update(deltaTime float64) {
	if s.sleep.Active() {
		if s.sleep.Update(deltaTime) {
			s.endDay()
		}
		// 转场期间世界仍然运行（雨滴、特效继续），只是没有玩家输入
		s.world.Update(deltaTime, systems.PlayerInput{})
		return
	}

	if s.keys.justPressed(keyGrid) && s.settings != nil {
		s.settings.ToggleShowGrid()
	}

	if s.shopOpen {
		s.updateShop()
		s.world.Update(deltaTime, systems.PlayerInput{})
		return
	}
	if s.keys.justPressed(keyShop) {
		s.shopOpen = true
		s.shopMessage = ""
		return
	}

	s.world.Update(deltaTime, playerInput(s.keys))
	s.camera.Update(deltaTime, s.world.Player().Center())

	if s.world.SleepRequested() {
		s.sleep.Start()
	}
}

func (s *FarmScene) updateShop() {
	shop := s.world.Shop()
	switch shopInput(s.keys) {
	case shopClose:
		s.shopOpen = false
	case shopUp:
		shop.MoveUp()
	case shopDown:
		shop.MoveDown()
	case shopConfirm:
		if err := shop.Confirm(); err != nil {
			switch {
			case errors.Is(err, game.ErrInsufficientFunds):
				s.shopMessage = "not enough money"
			case errors.Is(err, game.ErrOutOfStock):
				s.shopMessage = "nothing to sell"
			default:
				s.shopMessage = err.Error()
			}
			return
		}
		s.shopMessage = ""
		if s.audio != nil {
			s.audio.PlaySound(types.SoundSuccess)
		}
	}
}

// endDay 屏幕全黑时执行换日
func (s *FarmScene) endDay() {
	summary := s.world.Sleep()
	s.lastSummary = &summary

	if s.journal != nil {
		if _, err := s.journal.RecordDay(summary.JournalRecord()); err != nil {
			s.logger.Warn("failed to record day", "day", summary.Day, "error", err)
		}
	}
	if s.saves != nil {
		if err := s.saves.Save(s.world.SaveData()); err != nil {
			s.logger.Warn("autosave failed", "error", err)
		}
	}
	s.logger.Info("day ended", "day", summary.Day, "gathered", len(summary.Gathered), "money", summary.Money)
}

// SaveOnExit 退出游戏时保存进度和设置
func (s *FarmScene) SaveOnExit() bool {
	ok := true
	if s.saves != nil {
		if err := s.saves.Save(s.world.SaveData()); err != nil {
			s.logger.Warn("save on exit failed", "error", err)
			ok = false
		}
	}
	if s.settings != nil {
		if err := s.settings.Save(); err != nil {
			s.logger.Warn("settings save failed", "error", err)
			ok = false
		}
	}
	return ok
}

// SetViewSize 更新视口尺寸
func (s *FarmScene) SetViewSize(w, h int) {
	s.viewW, s.viewH = w, h
	s.camera.SetViewSize(float64(w), float64(h))
}

// showGrid 是否显示网格线
func (s *FarmScene) showGrid() bool {
	return s.settings != nil && s.settings.Settings().ShowGrid
}

var _ game.Saveable = (*FarmScene)(nil)
var _ game.Scene = (*FarmScene)(nil)

// Draw 绘制场景（实现见 farm_scene_draw.go）
func (s *FarmScene) Draw(screen *ebiten.Image) {
	s.draw(screen)
}
