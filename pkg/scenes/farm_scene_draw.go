package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
	"github.com/decker502/farmvale/pkg/utils"
)

// 调色板
var (
	colorGrass      = color.RGBA{R: 108, G: 168, B: 84, A: 255}
	colorFence      = color.RGBA{R: 120, G: 98, B: 72, A: 255}
	colorPond       = color.RGBA{R: 70, G: 130, B: 200, A: 255}
	colorBed        = color.RGBA{R: 190, G: 80, B: 80, A: 255}
	colorSoil       = color.RGBA{R: 134, G: 94, B: 60, A: 255}
	colorSoilEdge   = color.RGBA{R: 92, G: 62, B: 38, A: 255}
	colorWater      = color.RGBA{R: 40, G: 50, B: 110, A: 90}
	colorStem       = color.RGBA{R: 60, G: 150, B: 50, A: 255}
	colorCornRipe   = color.RGBA{R: 240, G: 210, B: 60, A: 255}
	colorTomatoRipe = color.RGBA{R: 220, G: 50, B: 40, A: 255}
	colorTrunk      = color.RGBA{R: 100, G: 70, B: 40, A: 255}
	colorCanopy     = color.RGBA{R: 40, G: 110, B: 50, A: 255}
	colorApple      = color.RGBA{R: 210, G: 30, B: 30, A: 255}
	colorPlayer     = color.RGBA{R: 60, G: 90, B: 200, A: 255}
	colorFacing     = color.RGBA{R: 250, G: 230, B: 200, A: 255}
	colorTarget     = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	colorRain       = color.RGBA{R: 180, G: 200, B: 255, A: 200}
	colorGridLine   = color.RGBA{R: 0, G: 0, B: 0, A: 60}
	colorPanel      = color.RGBA{R: 20, G: 20, B: 30, A: 200}
	colorCursor     = color.RGBA{R: 255, G: 255, B: 255, A: 60}
)

// soilEdge 耕地边缘宽度：没有相邻耕地的一侧画深色边
const soilEdge = 4

func (s *FarmScene) draw(screen *ebiten.Image) {
	screen.Fill(colorGrass)
	off := s.camera.Offset()

	for _, r := range s.world.RenderList() {
		rect := types.Rect{X: r.Rect.X - off.X, Y: r.Rect.Y - off.Y, W: r.Rect.W, H: r.Rect.H}
		switch r.Kind {
		case components.RenderDecor:
			drawDecor(screen, rect, r.Sprite)
		case components.RenderSoil:
			s.drawSoil(screen, rect, r.Entity)
		case components.RenderWater:
			fillRect(screen, rect, colorWater)
		case components.RenderPlant:
			s.drawCrop(screen, rect, r.Sprite, r.Frame, 255)
		case components.RenderParticle:
			s.drawCrop(screen, rect, r.Sprite, r.Frame, s.particleAlpha(r.Entity))
		case components.RenderTree:
			drawTree(screen, rect, strings.HasSuffix(r.Sprite, "_stump"))
		case components.RenderFruit:
			c := rect.Center()
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(rect.W/2), colorApple, true)
		case components.RenderPlayer:
			s.drawPlayer(screen, rect)
		case components.RenderRain:
			drawRain(screen, rect, r.Layer)
		}
	}

	if s.showGrid() {
		s.drawGrid(screen, off)
	}
	s.drawHUD(screen)
	if s.shopOpen {
		s.drawShop(screen)
	}
	if a := s.sleep.Alpha(); a > 0 {
		fillRect(screen, types.Rect{W: float64(s.viewW), H: float64(s.viewH)}, color.RGBA{A: uint8(a * 255)})
	}
}

func fillRect(dst *ebiten.Image, r types.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func drawDecor(dst *ebiten.Image, r types.Rect, sprite string) {
	switch sprite {
	case "fence":
		fillRect(dst, r, colorFence)
	case "pond":
		fillRect(dst, r, colorPond)
	case "bed":
		fillRect(dst, r.Inflate(-8, -8), colorBed)
	}
}

// drawSoil 耕地填充色加上未连接一侧的边缘，形状来自自动拼接结果
func (s *FarmScene) drawSoil(dst *ebiten.Image, r types.Rect, id ecs.EntityID) {
	fillRect(dst, r, colorSoil)
	tile, ok := ecs.GetComponent[*components.SoilTileComponent](s.world.EntityManager(), id)
	if !ok {
		return
	}
	mask := tile.Variant.Mask()
	if mask&farm.NeighborNorth == 0 {
		fillRect(dst, types.Rect{X: r.X, Y: r.Y, W: r.W, H: soilEdge}, colorSoilEdge)
	}
	if mask&farm.NeighborSouth == 0 {
		fillRect(dst, types.Rect{X: r.X, Y: r.Bottom() - soilEdge, W: r.W, H: soilEdge}, colorSoilEdge)
	}
	if mask&farm.NeighborWest == 0 {
		fillRect(dst, types.Rect{X: r.X, Y: r.Y, W: soilEdge, H: r.H}, colorSoilEdge)
	}
	if mask&farm.NeighborEast == 0 {
		fillRect(dst, types.Rect{X: r.Right() - soilEdge, Y: r.Y, W: soilEdge, H: r.H}, colorSoilEdge)
	}
}

// drawCrop 按生长阶段画茎秆高度，成熟时画果实
func (s *FarmScene) drawCrop(dst *ebiten.Image, r types.Rect, sprite string, stage int, alpha uint8) {
	p, err := types.ParsePlantType(sprite)
	if err != nil {
		return
	}
	frames := 2
	if crop, ok := s.world.Config().Crop(p); ok {
		frames = crop.Frames
	}
	h := r.H * float64(stage+1) / float64(frames)
	stem := types.Rect{X: r.X + r.W*0.4, Y: r.Bottom() - h, W: r.W * 0.2, H: h}
	fillRect(dst, stem, withAlpha(colorStem, alpha))
	if stage >= frames-1 {
		ripe := colorCornRipe
		if p == types.PlantTomato {
			ripe = colorTomatoRipe
		}
		cx := stem.Center().X
		vector.DrawFilledCircle(dst, float32(cx), float32(stem.Y+r.W*0.2), float32(r.W*0.25), withAlpha(ripe, alpha), true)
	}
}

// particleAlpha 收获特效随剩余寿命淡出
func (s *FarmScene) particleAlpha(id ecs.EntityID) uint8 {
	life, ok := ecs.GetComponent[*components.LifetimeComponent](s.world.EntityManager(), id)
	if !ok || life.MaxLifetime <= 0 {
		return 255
	}
	left := 1 - utils.EaseOutQuad(life.CurrentLifetime/life.MaxLifetime)
	return uint8(utils.Clamp01(left) * 255)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// vector 使用预乘 alpha
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: uint8(uint16(c.A) * uint16(a) / 255),
	}
}

func drawTree(dst *ebiten.Image, r types.Rect, stump bool) {
	if stump {
		fillRect(dst, r, colorTrunk)
		return
	}
	trunk := types.Rect{X: r.X + r.W*0.4, Y: r.Y + r.H*0.55, W: r.W * 0.2, H: r.H * 0.45}
	fillRect(dst, trunk, colorTrunk)
	vector.DrawFilledCircle(dst, float32(r.X+r.W/2), float32(r.Y+r.W/2), float32(r.W/2), colorCanopy, true)
}

func drawRain(dst *ebiten.Image, r types.Rect, layer components.RenderLayer) {
	if layer == components.LayerRainFloor {
		c := r.Center()
		vector.StrokeCircle(dst, float32(c.X), float32(c.Y), float32(r.W/2), 1, colorRain, true)
		return
	}
	vector.StrokeLine(dst, float32(r.Right()), float32(r.Y), float32(r.X), float32(r.Bottom()), 1, colorRain, true)
}

func (s *FarmScene) drawPlayer(dst *ebiten.Image, r types.Rect) {
	fillRect(dst, r.Inflate(-r.W*0.3, -r.H*0.1), colorPlayer)

	off := s.camera.Offset()
	target := s.world.Player().ToolTarget()
	tx, ty := float32(target.X-off.X), float32(target.Y-off.Y)
	vector.StrokeLine(dst, tx-6, ty, tx+6, ty, 1, colorTarget, false)
	vector.StrokeLine(dst, tx, ty-6, tx, ty+6, 1, colorTarget, false)

	c := r.Center()
	dir := target.Add(-off.X-c.X, -off.Y-c.Y)
	fillRect(dst, types.Rect{X: c.X + dir.X*0.2 - 3, Y: c.Y + dir.Y*0.2 - 3, W: 6, H: 6}, colorFacing)
}

func (s *FarmScene) drawGrid(dst *ebiten.Image, off types.Point) {
	g := s.world.Grid()
	ts := g.TileSize()
	w, h := float64(g.Cols())*ts, float64(g.Rows())*ts
	for col := 0; col <= g.Cols(); col++ {
		x := float32(float64(col)*ts - off.X)
		vector.StrokeLine(dst, x, float32(-off.Y), x, float32(h-off.Y), 1, colorGridLine, false)
	}
	for row := 0; row <= g.Rows(); row++ {
		y := float32(float64(row)*ts - off.Y)
		vector.StrokeLine(dst, float32(-off.X), y, float32(w-off.X), y, 1, colorGridLine, false)
	}
	for _, c := range g.Cells(farm.Farmable) {
		r := g.CellRect(c)
		ebitenutil.DebugPrintAt(dst, g.Flags(c).String(), int(r.X-off.X)+2, int(r.Y-off.Y)+2)
	}
}

func (s *FarmScene) drawHUD(dst *ebiten.Image) {
	snap := s.world.Snapshot()
	weather := "sunny"
	if snap.Raining {
		weather = "rain"
	}
	lines := []string{
		fmt.Sprintf("Day %d  %s  $%d", snap.Day, weather, snap.Money),
		fmt.Sprintf("Tool: %s  Seed: %s x%d", snap.Tool, snap.Seed, snap.Seeds[snap.Seed]),
	}
	var items []string
	for _, item := range types.AllItems {
		if n := snap.Items[item]; n > 0 {
			items = append(items, fmt.Sprintf("%s %d", item, n))
		}
	}
	if len(items) > 0 {
		lines = append(lines, strings.Join(items, "  "))
	}
	if s.lastSummary != nil && s.sleep.Active() {
		lines = append(lines, fmt.Sprintf("Day %d done", s.lastSummary.Day))
	}

	fillRect(dst, types.Rect{X: 4, Y: 4, W: 260, H: float64(len(lines)*16 + 8)}, colorPanel)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, 10, 8+i*16)
	}
	ebitenutil.DebugPrintAt(dst, "arrows move  space tool  Q tool  ctrl seed  E seed  enter bed  M shop", 10, s.viewH-20)
}

func (s *FarmScene) drawShop(dst *ebiten.Image) {
	shop := s.world.Shop()
	entries := shop.Entries()
	panel := types.Rect{W: 300, H: float64(len(entries)*18 + 48)}.WithCenter(types.Point{X: float64(s.viewW) / 2, Y: float64(s.viewH) / 2})
	fillRect(dst, panel, colorPanel)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("SHOP   money $%d", s.world.Inventory().Money), int(panel.X)+10, int(panel.Y)+8)

	for i, e := range entries {
		y := panel.Y + 28 + float64(i*18)
		if i == shop.Index() {
			fillRect(dst, types.Rect{X: panel.X + 4, Y: y - 1, W: panel.W - 8, H: 17}, colorCursor)
		}
		verb := "buy "
		if e.Sell {
			verb = "sell"
		}
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s %-12s $%-3d have %d", verb, e.Label, e.Price, e.Amount), int(panel.X)+10, int(y))
	}
	if s.shopMessage != "" {
		ebitenutil.DebugPrintAt(dst, s.shopMessage, int(panel.X)+10, int(panel.Bottom())-18)
	}
}
