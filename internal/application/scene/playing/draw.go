package playing

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/crumble/internal/application/state"
	"github.com/younwookim/crumble/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorStone     = color.RGBA{90, 90, 110, 255}
	colorCloud     = color.RGBA{200, 210, 235, 255}
	colorGrass     = color.RGBA{80, 160, 80, 255}
	colorPortal    = color.RGBA{180, 90, 220, 255}
	colorDecor     = color.RGBA{70, 70, 95, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorHighlight = color.RGBA{255, 255, 255, 60}
	colorArmed     = color.RGBA{255, 120, 120, 255}
)

// whiteSubImage is the 1x1 source for untextured triangles, created on first use
var whiteSubImage *ebiten.Image

func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

func tileColor(t entity.TileType) color.RGBA {
	switch t {
	case entity.TileStone:
		return colorStone
	case entity.TileCloud:
		return colorCloud
	case entity.TileGrass:
		return colorGrass
	case entity.TilePortal:
		return colorPortal
	default:
		return colorDecor
	}
}

// fade scales every channel by a (premultiplied alpha)
func fade(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		uint8(float64(c.R) * a),
		uint8(float64(c.G) * a),
		uint8(float64(c.B) * a),
		uint8(float64(c.A) * a),
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := p.camera
	if shake := p.world.ScreenShake(); shake > 0 {
		cam.X += shake * (2*p.shakeRng.Float64() - 1)
		cam.Y += shake * (2*p.shakeRng.Float64() - 1)
	}
	cam.X, cam.Y = math.Round(cam.X), math.Round(cam.Y)

	p.drawDecorations(screen, cam)
	p.drawTiles(screen, cam)
	p.drawPlayer(screen, cam)
	p.drawSmoke(screen, cam)
	p.drawKickups(screen, cam)
	p.drawSparks(screen, cam)

	if p.debug {
		p.drawDebug(screen)
	}

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateTransition:
		p.drawTransition(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam entity.Vec2) {
	view := entity.Rect{X: cam.X, Y: cam.Y, W: float64(p.screenW), H: float64(p.screenH)}
	size := float32(entity.TileSize)

	for _, t := range p.world.Grid().TilesIn(view) {
		x := float32(float64(t.Pos.X*entity.TileSize) - cam.X)
		y := float32(float64(t.Pos.Y*entity.TileSize) - cam.Y)

		c := tileColor(t.Type)
		if t.Armed() && p.debug {
			c = colorArmed
		}
		vector.DrawFilledRect(screen, x, y, size, size, c, false)

		if t.Type.IsAutoTiled() {
			if _, up, _, _ := entity.ExposedEdges(t.Variant); up {
				vector.DrawFilledRect(screen, x, y, size, 1, colorHighlight, false)
			}
		}
	}
}

func (p *Playing) drawDecorations(screen *ebiten.Image, cam entity.Vec2) {
	size := float32(entity.TileSize)
	for _, d := range p.world.Grid().Decorations() {
		x := float32(d.Pos.X - cam.X)
		y := float32(d.Pos.Y - cam.Y)
		vector.DrawFilledRect(screen, x, y, size, size, tileColor(d.Type), false)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam entity.Vec2) {
	box := p.world.Player().AABB()
	vector.DrawFilledRect(screen,
		float32(box.X-cam.X), float32(box.Y-cam.Y),
		float32(box.W), float32(box.H), colorPlayer, false)
}

func (p *Playing) drawKickups(screen *ebiten.Image, cam entity.Vec2) {
	for _, k := range p.world.Particles().Kickups() {
		c := fade(k.Color, k.Alpha())
		vector.DrawFilledRect(screen, float32(k.Pos.X-cam.X), float32(k.Pos.Y-cam.Y), 1, 1, c, false)
	}
}

func (p *Playing) drawSparks(screen *ebiten.Image, cam entity.Vec2) {
	for _, s := range p.world.Particles().Sparks() {
		poly := s.Polygon()
		for i := range poly {
			poly[i].X -= cam.X
			poly[i].Y -= cam.Y
		}
		fillPolygon(screen, poly, s.Color)
	}
}

func (p *Playing) drawSmoke(screen *ebiten.Image, cam entity.Vec2) {
	dur := p.world.Particles().SmokeDuration()
	for _, s := range p.world.Particles().Smokes() {
		half := s.Extent(dur) / 2
		rot := s.Rotation * math.Pi / 180
		sin, cos := math.Sincos(rot)

		corners := []entity.Vec2{{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
		for i, c := range corners {
			corners[i] = entity.Vec2{
				X: s.Pos.X - cam.X + c.X*cos - c.Y*sin,
				Y: s.Pos.Y - cam.Y + c.X*sin + c.Y*cos,
			}
		}
		fillPolygon(screen, corners, fade(s.Color, s.Alpha(dur)))
	}
}

// fillPolygon fills a convex or concave outline with a flat color
func fillPolygon(dst *ebiten.Image, points []entity.Vec2, c color.RGBA) {
	if len(points) < 3 || c.A == 0 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, pt := range points[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}

	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero}
	dst.DrawTriangles(vs, is, solidSource(), op)
}

func (p *Playing) drawDebug(screen *ebiten.Image) {
	player := p.world.Player()
	counts := p.world.Particles().Counts()

	text := fmt.Sprintf("level %s  tps %.0f\npos %.1f,%.1f  vel %.2f,%.2f\ntiles %d  armed %d\nkickups %d  sparks %d  smoke %d",
		p.Level().Name, ebiten.ActualTPS(),
		player.Pos.X, player.Pos.Y, player.Vel.X, player.Vel.Y,
		p.world.Grid().Len(), len(p.world.Grid().Armed()),
		counts.Kickups, counts.Sparks, counts.Smokes)
	ebitenutil.DebugPrintAt(screen, text, 4, 4)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), overlay, false)

	text := "PAUSED\n\nESC to resume\nR to restart"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-40, p.screenH/2-30)
}

// drawTransition darkens the screen as the level fades out
func (p *Playing) drawTransition(screen *ebiten.Image) {
	total := p.config.Feedback.TransitionFrames
	if total <= 0 {
		return
	}
	progress := 1 - p.transitionLeft/total
	overlay := fade(color.RGBA{0, 0, 0, 255}, progress)
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), overlay, false)
}
