package game

import (
	"math/rand"
	"time"
)

// Weather 每日天气
//
// 每天开始时掷一次 0..10 的随机数，大于阈值即为雨天。
// 随机源由调用方注入（种子固定时结果可复现），不使用全局随机数。
type Weather struct {
	rng       *rand.Rand
	threshold int
	raining   bool
}

// NewWeather 创建天气对象并掷出第一天的天气
//
// 参数：
//   - seed: 随机种子，0 表示使用当前时间
//   - threshold: 降雨阈值（0..10），掷出的数大于该值时下雨
func NewWeather(seed int64, threshold int) *Weather {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &Weather{
		rng:       rand.New(rand.NewSource(seed)),
		threshold: threshold,
	}
	w.Roll()
	return w
}

// Roll 为新的一天重新掷天气并返回是否下雨
func (w *Weather) Roll() bool {
	w.raining = w.rng.Intn(11) > w.threshold
	return w.raining
}

// Raining 返回今天是否下雨
func (w *Weather) Raining() bool {
	return w.raining
}

// Rand 返回天气共享的随机源（果树结果等每日随机事件使用同一随机源）
func (w *Weather) Rand() *rand.Rand {
	return w.rng
}
