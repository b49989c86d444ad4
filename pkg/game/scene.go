package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景（农场、商店覆盖层之外的整屏画面）
// 同一时刻只有一个场景接收 Update 和 Draw
type Scene interface {
	// Update 推进一帧，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时需要落盘的场景实现它
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序照常退出）
	SaveOnExit() bool
}
