package scenes

import "github.com/decker502/farmvale/pkg/utils"

// sleepFadeSeconds 睡觉转场中淡出（或淡入）的时长
const sleepFadeSeconds = 0.6

// sleepPhase 转场阶段
type sleepPhase int

const (
	sleepIdle sleepPhase = iota
	sleepFadingOut
	sleepFadingIn
)

// sleepTransition 睡觉转场：屏幕逐渐变黑，全黑的那一帧执行换日，然后逐渐恢复
type sleepTransition struct {
	phase    sleepPhase
	progress float64 // 0 完全透明，1 全黑
}

// Start 开始转场，已在转场中时忽略
func (t *sleepTransition) Start() bool {
	if t.phase != sleepIdle {
		return false
	}
	t.phase = sleepFadingOut
	t.progress = 0
	return true
}

// Active 是否正在转场（转场中不处理玩家输入）
func (t *sleepTransition) Active() bool {
	return t.phase != sleepIdle
}

// Alpha 返回遮罩透明度（缓入缓出）
func (t *sleepTransition) Alpha() float64 {
	return utils.EaseInOutCubic(t.progress)
}

// Update 推进转场，返回 true 表示本帧屏幕刚好全黑，调用方应执行换日
func (t *sleepTransition) Update(dt float64) bool {
	switch t.phase {
	case sleepFadingOut:
		t.progress += dt / sleepFadeSeconds
		if t.progress >= 1 {
			t.progress = 1
			t.phase = sleepFadingIn
			return true
		}
	case sleepFadingIn:
		t.progress -= dt / sleepFadeSeconds
		if t.progress <= 0 {
			t.progress = 0
			t.phase = sleepIdle
		}
	}
	return false
}
