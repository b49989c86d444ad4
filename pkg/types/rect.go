package types

// Point 世界坐标中的一个点
type Point struct {
	X, Y float64
}

// Add 返回平移后的点
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect 世界坐标中的轴对齐矩形
// 与网格命中测试保持一致：每个轴都是半开区间 [X, X+W)
type Rect struct {
	X, Y, W, H float64
}

// Right 返回右边界（不包含）
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom 返回下边界（不包含）
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center 返回矩形中心
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// MidBottom 返回底边中点
func (r Rect) MidBottom() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H}
}

// Contains 检查点是否位于矩形内（半开区间）
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects 检查两个矩形是否重叠（仅接触边界不算重叠）
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Inflate 以中心为基准扩大（负值为缩小）矩形
func (r Rect) Inflate(dw, dh float64) Rect {
	return Rect{X: r.X - dw/2, Y: r.Y - dh/2, W: r.W + dw, H: r.H + dh}
}

// WithCenter 返回中心移动到 c 的同尺寸矩形
func (r Rect) WithCenter(c Point) Rect {
	return Rect{X: c.X - r.W/2, Y: c.Y - r.H/2, W: r.W, H: r.H}
}

// RectFromMidBottom 以底边中点和尺寸构造矩形
func RectFromMidBottom(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h, W: w, H: h}
}
