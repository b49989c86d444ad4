package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/farmvale/pkg/systems"
)

// keyState 按键查询，测试中可替换
type keyState struct {
	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
}

// ebitenKeys 读取真实键盘
var ebitenKeys = keyState{
	pressed:     ebiten.IsKeyPressed,
	justPressed: inpututil.IsKeyJustPressed,
}

// 键位
var (
	keyUseTool   = ebiten.KeySpace
	keyCycleTool = ebiten.KeyQ
	keyUseSeed   = ebiten.KeyControlLeft
	keyCycleSeed = ebiten.KeyE
	keyInteract  = ebiten.KeyEnter
	keyShop      = ebiten.KeyM
	keyClose     = ebiten.KeyEscape
	keyGrid      = ebiten.KeyF3
)

// playerInput 把键盘状态转换为玩家输入
// 方向键持续按住有效；动作键按住也有效，由玩家系统的计时和冷却限制频率
func playerInput(keys keyState) systems.PlayerInput {
	var in systems.PlayerInput
	if keys.pressed(ebiten.KeyLeft) {
		in.MoveX--
	}
	if keys.pressed(ebiten.KeyRight) {
		in.MoveX++
	}
	if keys.pressed(ebiten.KeyUp) {
		in.MoveY--
	}
	if keys.pressed(ebiten.KeyDown) {
		in.MoveY++
	}
	in.UseTool = keys.pressed(keyUseTool)
	in.UseSeed = keys.pressed(keyUseSeed)
	in.CycleTool = keys.pressed(keyCycleTool)
	in.CycleSeed = keys.pressed(keyCycleSeed)
	in.Interact = keys.justPressed(keyInteract)
	return in
}

// shopAction 商店菜单中的一次操作
type shopAction int

const (
	shopNone shopAction = iota
	shopUp
	shopDown
	shopConfirm
	shopClose
)

// shopInput 商店打开时只响应菜单按键
func shopInput(keys keyState) shopAction {
	switch {
	case keys.justPressed(keyClose), keys.justPressed(keyShop):
		return shopClose
	case keys.justPressed(ebiten.KeyUp):
		return shopUp
	case keys.justPressed(ebiten.KeyDown):
		return shopDown
	case keys.justPressed(ebiten.KeySpace), keys.justPressed(keyInteract):
		return shopConfirm
	}
	return shopNone
}
