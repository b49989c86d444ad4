package components

// ParticleComponent 运动中的短暂粒子（雨滴）
// 位置保存在 BoundsComponent 中，每帧按速度平移；销毁由 LifetimeComponent 负责
type ParticleComponent struct {
	VelocityX float64 // 像素/秒
	VelocityY float64
	Alpha     float64 // 0..1，随剩余寿命衰减
}
