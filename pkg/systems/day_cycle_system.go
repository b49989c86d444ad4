package systems

import (
	"github.com/charmbracelet/log"
)

// WeatherSource 每日天气
type WeatherSource interface {
	Roll() bool
	Raining() bool
}

// DayEvent 一天结束时通知监听者的内容
type DayEvent struct {
	FinishedDay int  // 刚结束的一天
	Day         int  // 新的一天
	Raining     bool // 新的一天是否下雨
}

// DayListener 换日监听者（日志、存档等）
type DayListener func(DayEvent)

// DayCycleSystem 每日重置
//
// 顺序固定：果树重新结果 → 清除所有浇水 → 掷新一天的天气（下雨则全部浇湿）→ 天数加一并通知。
// 必须先清水再下雨，否则晴天会残留前一天的浇水。
type DayCycleSystem struct {
	soil      *SoilSystem
	orchard   *OrchardSystem
	weather   WeatherSource
	day       int
	listeners []DayListener
	logger    *log.Logger
}

// NewDayCycleSystem 创建换日系统，orchard 可为 nil
func NewDayCycleSystem(soil *SoilSystem, orchard *OrchardSystem, weather WeatherSource) *DayCycleSystem {
	return &DayCycleSystem{
		soil:    soil,
		orchard: orchard,
		weather: weather,
		day:     1,
		logger:  log.WithPrefix("DayCycleSystem"),
	}
}

// Begin 应用第一天的天气（不掷骰）
func (s *DayCycleSystem) Begin() {
	raining := s.weather.Raining()
	s.soil.SetRaining(raining)
	if raining {
		s.soil.WaterAll()
	}
}

// Day 返回当前天数（从 1 开始）
func (s *DayCycleSystem) Day() int {
	return s.day
}

// SetDay 读档时恢复天数
func (s *DayCycleSystem) SetDay(day int) {
	if day < 1 {
		day = 1
	}
	s.day = day
}

// AddListener 注册换日监听者
func (s *DayCycleSystem) AddListener(l DayListener) {
	s.listeners = append(s.listeners, l)
}

// Reset 结束当天并开始新的一天
func (s *DayCycleSystem) Reset() DayEvent {
	if s.orchard != nil {
		s.orchard.RegrowFruit()
	}

	s.soil.RemoveWater()

	raining := s.weather.Roll()
	s.soil.SetRaining(raining)
	if raining {
		s.soil.WaterAll()
	}

	event := DayEvent{FinishedDay: s.day, Day: s.day + 1, Raining: raining}
	s.day = event.Day
	s.logger.Info("new day", "day", event.Day, "raining", raining)
	for _, l := range s.listeners {
		l(event)
	}
	return event
}
