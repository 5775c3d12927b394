package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/sim"
)

var (
	ColText    = rl.NewColor(240, 240, 240, 255)
	ColTextDim = rl.NewColor(200, 200, 200, 160)
	ColPanel   = rl.NewColor(10, 10, 10, 140)
	ColGraph   = rl.NewColor(0, 255, 136, 255)
	ColPointer = rl.NewColor(255, 255, 255, 200)
)

const maxTelemetry = 240

// Rebuild returns a fresh session for the reset key.
type Rebuild func() (*sim.Session, error)

type App struct {
	Session   *sim.Session
	Rebuild   Rebuild
	Camera    rl.Camera2D
	Running   bool
	ShowHUD   bool
	Telemetry []float64
	Contacts  int
	Err       error
}

func initWindow(s *sim.Session, fps float64) {
	rl.InitWindow(int32(s.Canvas.Width), int32(s.Canvas.Height), s.Title)
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyQ)
}

func NewApp(s *sim.Session, rebuild Rebuild) *App {
	a := &App{Rebuild: rebuild, Running: true, ShowHUD: true}
	a.attach(s)
	return a
}

func (a *App) attach(s *sim.Session) {
	a.Session = s
	a.Camera = viewCamera(s.Render)
	a.Telemetry = make([]float64, 0, maxTelemetry)
	a.Contacts = 0
}

// viewCamera fits the view's LookAt rectangle to a window the size of the
// canvas.
func viewCamera(v sim.View) rl.Camera2D {
	zoom := v.Canvas.Width / v.Width()
	if z := v.Canvas.Height / v.Height(); z < zoom {
		zoom = z
	}
	return rl.Camera2D{
		Target: rl.NewVector2(float32(v.Min.X), float32(v.Min.Y)),
		Zoom:   float32(zoom),
	}
}

// Run opens the window and steps s once per frame until it is closed.
func Run(s *sim.Session, rebuild Rebuild) {
	initWindow(s, s.Runner.Config().FPS)
	defer rl.CloseWindow()

	app := NewApp(s, rebuild)
	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
	app.Session.Stop()
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}

	a.updatePointer()

	if a.Running || rl.IsKeyPressed(rl.KeyN) {
		a.step()
	}
}

func (a *App) updatePointer() {
	ptr := a.Session.Pointer
	if ptr == nil {
		return
	}
	m := rl.GetScreenToWorld2D(rl.GetMousePosition(), a.Camera)
	at := cp.Vector{X: float64(m.X), Y: float64(m.Y)}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		ptr.Press(at)
	}
	ptr.Move(at)
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		ptr.Release()
	}
}

func (a *App) step() {
	f := a.Session.Runner.Step()
	a.Contacts += f.Started
	a.Telemetry = append(a.Telemetry, f.KineticEnergy)
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) reset() {
	if a.Rebuild == nil {
		return
	}
	s, err := a.Rebuild()
	if err != nil {
		a.Err = err
		return
	}
	a.Session.Stop()
	a.attach(s)
	a.Err = nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(a.Session.Render.Background))

	rl.BeginMode2D(a.Camera)
	drawWorld(a.Session.World)
	drawPointer(a.Session)
	rl.EndMode2D()

	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w := a.Session.World
	rl.DrawRectangle(8, 8, 250, 132, ColPanel)
	rl.DrawText(a.Session.Title, 16, 16, 20, ColText)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("%s  %d fps", status, rl.GetFPS()),
		fmt.Sprintf("t=%.2fs  steps=%d", w.Time(), w.Steps()),
		fmt.Sprintf("bodies=%d  contacts=%d", len(w.Bodies()), a.Contacts),
	}
	for i, l := range lines {
		rl.DrawText(l, 16, int32(42+i*16), 14, ColTextDim)
	}
	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 16, 150, 14, rl.Red)
	}
	a.DrawTelemetry(16, 96, 234, 36)
	rl.DrawText("SPACE pause  N step  R reset  H hud  Q quit", 8, int32(a.Session.Canvas.Height)-20, 12, ColTextDim)
}

// DrawTelemetry plots the kinetic energy history into the given box.
func (a *App) DrawTelemetry(x, y, width, height float32) {
	if len(a.Telemetry) < 2 {
		return
	}
	hi := a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v > hi {
			hi = v
		}
	}
	if hi == 0 {
		hi = 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	dx := width / float32(maxTelemetry-1)
	for i, v := range a.Telemetry {
		points[i] = rl.NewVector2(x+float32(i)*dx, y+height-float32(v/hi)*height)
	}
	rl.DrawLineStrip(points, ColGraph)
}
