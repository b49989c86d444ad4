// Package app 提供游戏应用的核心包装器
//
// 该包把窗口游戏的初始化逻辑从命令行入口中提取出来：加载配置、打开存档和日志、
// 构建世界和场景，并实现 ebiten.Game 接口。
package app

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/farmvale/pkg/config"
	"github.com/decker502/farmvale/pkg/game"
	"github.com/decker502/farmvale/pkg/scenes"
	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/world"
)

// 逻辑屏幕尺寸
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// AppName gdata 存档目录名
const AppName = "farmvale"

// Config 定义应用启动配置
type Config struct {
	// ConfigPath 游戏配置文件路径，为空时按默认顺序查找
	ConfigPath string
	// Seed 随机种子，0 表示使用配置或当前时间
	Seed int64
	// JournalPath 农场日志数据库路径，为空时不记录
	JournalPath string
	// NewGame 忽略已有存档
	NewGame bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	journal      *storage.Journal

	pendingWindowSizeReset   bool // 退出全屏后延迟重设窗口大小
	windowSizeResetCountdown int
	logger                   *log.Logger
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	logger := log.WithPrefix("App")

	gameCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// gdata 打不开时以内存模式运行（不持久化设置和存档）
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("gdata unavailable, progress will not be saved", "error", err)
		gdataManager = nil
	}

	settings := game.NewSettingsManager(gdataManager)
	if err := settings.Load(); err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
	}
	saves := game.NewSaveManager(gdataManager, "")

	audioManager := game.NewAudioManager(audio.NewContext(game.SampleRate), settings)

	w, err := world.New(gameCfg, world.Options{Seed: cfg.Seed, Sounds: audioManager})
	if err != nil {
		return nil, fmt.Errorf("构建世界失败: %w", err)
	}

	if !cfg.NewGame {
		data, err := saves.Load()
		switch {
		case err == nil:
			if err := w.ApplySave(data); err != nil {
				logger.Warn("ignoring unreadable save", "error", err)
			} else {
				logger.Info("save loaded", "day", data.Day, "money", data.Money)
			}
		case errors.Is(err, game.ErrNoSave):
			logger.Info("no save found, starting a new farm")
		default:
			logger.Warn("failed to load save", "error", err)
		}
	}

	var journal *storage.Journal
	if cfg.JournalPath != "" {
		journal, err = storage.Open(cfg.JournalPath)
		if err != nil {
			logger.Warn("farm journal disabled", "error", err)
			journal = nil
		}
	}

	deps := scenes.FarmSceneDeps{
		World:      w,
		Audio:      audioManager,
		Settings:   settings,
		Saves:      saves,
		ViewWidth:  WindowWidth,
		ViewHeight: WindowHeight,
	}
	// 避免把 nil *storage.Journal 装进接口
	if journal != nil {
		deps.Journal = journal
	}

	sceneManager := game.NewSceneManager()
	sceneManager.Register(scenes.SceneFarm, func() (game.Scene, error) {
		return scenes.NewFarmScene(deps), nil
	})
	if err := sceneManager.Load(scenes.SceneFarm); err != nil {
		return nil, err
	}

	if settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		journal:      journal,
		logger:       logger,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后要等几帧窗口管理器处理完，才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时两侧填充黑色并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Shutdown 窗口关闭时保存进度并关闭日志数据库
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		a.logger.Warn("progress may not have been saved")
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("failed to close journal", "error", err)
		}
	}
}

// Run 打开窗口并运行游戏，窗口关闭后保存
func Run(cfg Config) error {
	a, err := NewApp(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle("Farmvale")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(a)
	a.Shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
