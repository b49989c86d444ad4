package components

// CameraComponent 镜头状态
// X/Y 是视口左上角的世界坐标；Follow 为 0 时直接对准目标，否则按每秒比例平滑靠近
type CameraComponent struct {
	X, Y         float64
	ViewW, ViewH float64
	Follow       float64
}
