package game

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/input"
	"github.com/pthm-cable/skyhunt/telemetry"
	"github.com/pthm-cable/skyhunt/ui"
)

func TestMain(m *testing.M) {
	if err := config.Init(""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func held(actions ...input.Action) func(input.Action) bool {
	return func(a input.Action) bool {
		for _, h := range actions {
			if h == a {
				return true
			}
		}
		return false
	}
}

func newHeadless(t *testing.T) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{Headless: true})
	g.toggles.SetEnabled(ui.ToggleAutopilot, false)
	return g
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestGame_StepCommitsFrame(t *testing.T) {
	g := newHeadless(t)
	dt := float32(config.Cfg().Headless.DT)

	for i := 0; i < 3; i++ {
		g.step(noKeys)
	}

	if g.Frame() != 3 {
		t.Errorf("expected frame 3, got %d", g.Frame())
	}
	// The first tick starts the clock at zero
	if !near(g.Elapsed(), 2*dt) {
		t.Errorf("expected elapsed %f, got %f", 2*dt, g.Elapsed())
	}
	frame, ok := g.State().Committed()
	if !ok || frame.Number != 3 {
		t.Errorf("expected committed frame 3, got %+v (ok=%v)", frame, ok)
	}
	if g.Outcome().Frame != 3 {
		t.Errorf("outcome should come from frame 3, got %d", g.Outcome().Frame)
	}
}

func TestGame_AvatarFollowsCamera(t *testing.T) {
	g := newHeadless(t)
	g.step(noKeys)
	before := g.State().Position(g.State().Avatar())

	g.camera.Position = g.camera.Position.Add(mgl32.Vec3{3, 0, 0})
	g.step(noKeys)
	after := g.State().Position(g.State().Avatar())

	// Bob only moves the avatar vertically
	if !near(after.X()-before.X(), 3) || !near(after.Z(), before.Z()) {
		t.Errorf("avatar should follow the camera: before %v, after %v", before, after)
	}
}

func TestGame_Reset(t *testing.T) {
	g := newHeadless(t)
	g.step(noKeys)

	st := g.State()
	st.Consume(st.Avatar())
	st.Consume(st.Targets()[0])
	st.Consume(st.Targets()[3])
	g.camera.Position = mgl32.Vec3{10, 10, 10}
	g.toggles.SetEnabled(ui.ToggleCameraLock, true)

	g.step(held(input.Reset))

	if st.Remaining() != st.Total() {
		t.Errorf("expected %d remaining after reset, got %d", st.Total(), st.Remaining())
	}
	if st.Consumed(st.Avatar()) {
		t.Error("avatar should be alive after reset")
	}
	for i, e := range st.Targets() {
		if st.Consumed(e) {
			t.Errorf("target %d should be alive after reset", i)
		}
	}
	if g.camera.Position != g.camera.Origin.Position {
		t.Errorf("camera should return to origin, got %v", g.camera.Position)
	}
	if g.toggles.IsEnabled(ui.ToggleCameraLock) {
		t.Error("reset should re-enable mouse look")
	}
	out := g.Outcome()
	if out.AvatarConsumed || out.Remaining != out.Total {
		t.Errorf("unexpected outcome after reset: %+v", out)
	}
}

func TestGame_ToggleOnEdgeOnly(t *testing.T) {
	g := newHeadless(t)
	bloom := g.toggles.IsEnabled(ui.ToggleBloom)

	// Held for three frames: one edge
	for i := 0; i < 3; i++ {
		g.step(held(input.ToggleBloom))
	}
	if g.toggles.IsEnabled(ui.ToggleBloom) == bloom {
		t.Error("bloom should flip once")
	}

	g.step(noKeys)
	g.step(held(input.ToggleBloom))
	if g.toggles.IsEnabled(ui.ToggleBloom) != bloom {
		t.Error("second press should flip bloom back")
	}
	if g.features().Bloom != bloom {
		t.Error("features should follow the toggle")
	}
}

func TestGame_Exposure(t *testing.T) {
	g := newHeadless(t)
	cfg := config.Cfg()
	start := g.settings.Exposure

	// First tick has zero delta
	g.step(held(input.ExposureUp))
	g.step(held(input.ExposureUp))
	want := start + cfg.Render.ExposureRate*float32(cfg.Headless.DT)
	if !near(g.settings.Exposure, want) {
		t.Errorf("expected exposure %f, got %f", want, g.settings.Exposure)
	}

	for i := 0; i < 600; i++ {
		g.step(held(input.ExposureDown))
	}
	if g.settings.Exposure != 0 {
		t.Errorf("exposure should clamp at 0, got %f", g.settings.Exposure)
	}
}

func TestGame_MouseLook(t *testing.T) {
	tests := []struct {
		name     string
		overlay  bool
		lock     bool
		consumed bool
		want     bool
	}{
		{"free", false, false, false, true},
		{"overlay", true, false, false, false},
		{"locked", false, true, false, false},
		{"avatar consumed", false, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newHeadless(t)
			g.toggles.SetEnabled(ui.ToggleOverlay, tt.overlay)
			g.toggles.SetEnabled(ui.ToggleCameraLock, tt.lock)
			g.outcome.AvatarConsumed = tt.consumed
			if got := g.mouseLook(); got != tt.want {
				t.Errorf("mouseLook() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGame_Quit(t *testing.T) {
	g := newHeadless(t)
	g.step(noKeys)
	if g.ShouldClose() {
		t.Fatal("should not close without quit")
	}
	g.step(held(input.Quit))
	if !g.ShouldClose() {
		t.Error("quit action should request close")
	}
}

func TestGame_AutopilotConsumesTargets(t *testing.T) {
	var windows []telemetry.WindowStats
	g := NewGameWithOptions(Options{
		Headless:      true,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	g.toggles.SetEnabled(ui.ToggleAutopilot, true)

	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
	}

	out := g.Outcome()
	if out.Remaining >= out.Total {
		t.Errorf("autopilot should have eaten something, %d of %d remain", out.Remaining, out.Total)
	}
	if out.Remaining != g.State().Remaining() {
		t.Errorf("outcome remaining %d disagrees with state %d", out.Remaining, g.State().Remaining())
	}
	if len(windows) == 0 {
		t.Fatal("expected at least one stats window")
	}
	if windows[0].WindowEndFrame <= windows[0].WindowStartFrame {
		t.Errorf("window should span frames: %+v", windows[0])
	}
}

func TestGame_PersistRoundTrip(t *testing.T) {
	cfg := config.Cfg()
	oldPath := cfg.Persist.Path
	cfg.Persist.Path = filepath.Join(t.TempDir(), "state.txt")
	t.Cleanup(func() { cfg.Persist.Path = oldPath })

	g := NewGameWithOptions(Options{Headless: true, Persist: true})
	g.settings.Background = mgl32.Vec3{0.25, 0.5, 0.75}
	g.toggles.SetEnabled(ui.ToggleOverlay, true)
	g.camera.Position = mgl32.Vec3{1, 2, 3}
	g.camera.SetFront(mgl32.Vec3{1, 0, 0})
	g.Unload()

	g2 := NewGameWithOptions(Options{Headless: true, Persist: true})
	if g2.settings.Background != (mgl32.Vec3{0.25, 0.5, 0.75}) {
		t.Errorf("background not restored: %v", g2.settings.Background)
	}
	if !g2.toggles.IsEnabled(ui.ToggleOverlay) {
		t.Error("overlay flag not restored")
	}
	if g2.camera.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("camera position not restored: %v", g2.camera.Position)
	}
	if f := g2.camera.Front; !near(f.X(), 1) || !near(f.Y(), 0) || !near(f.Z(), 0) {
		t.Errorf("camera front not restored: %v", f)
	}
	// Reset still goes to the configured origin
	g2.Reset()
	if g2.camera.Position != cfg.Camera.Position {
		t.Errorf("reset should use the configured origin, got %v", g2.camera.Position)
	}
}

func TestGame_MissingStateKeepsDefaults(t *testing.T) {
	cfg := config.Cfg()
	oldPath := cfg.Persist.Path
	cfg.Persist.Path = filepath.Join(t.TempDir(), "missing.txt")
	t.Cleanup(func() { cfg.Persist.Path = oldPath })

	g := NewGameWithOptions(Options{Headless: true, Persist: true})
	if g.settings.Background != cfg.Persist.Background {
		t.Errorf("expected default background, got %v", g.settings.Background)
	}
	if g.toggles.IsEnabled(ui.ToggleOverlay) {
		t.Error("overlay should default to off")
	}
	if g.camera.Position != cfg.Camera.Position {
		t.Errorf("expected origin camera, got %v", g.camera.Position)
	}
}

func TestGame_LogPerfStatsGroupsPhases(t *testing.T) {
	g := newHeadless(t)
	for i := 0; i < 3; i++ {
		g.step(noKeys)
	}

	var buf bytes.Buffer
	SetLogWriter(&buf)
	t.Cleanup(func() { SetLogWriter(nil) })
	g.LogPerfStats()

	out := buf.String()
	for _, want := range []string{"sim (", "Input", "Transform", "Logic"} {
		if !strings.Contains(out, want) {
			t.Errorf("perf log missing %q:\n%s", want, out)
		}
	}
	// Headless frames never reach the render phases
	if strings.Contains(out, "render (") {
		t.Errorf("unexpected render group in headless perf log:\n%s", out)
	}
}

func TestGame_InspectorListsEveryActor(t *testing.T) {
	g := newHeadless(t)
	g.step(noKeys)

	data := g.inspectorData()
	st := g.State()
	want := 2 + st.Total() + len(st.Decor())
	if len(data.Actors) != want {
		t.Fatalf("expected %d rows, got %d", want, len(data.Actors))
	}

	if data.Actors[0].Distance != -1 {
		t.Errorf("avatar row should carry no distance, got %f", data.Actors[0].Distance)
	}
	last := data.Actors[len(data.Actors)-1]
	if last.Name != "balloon" {
		t.Errorf("expected balloon as the last row, got %q", last.Name)
	}
	if last.Distance < 0 || last.Consumed {
		t.Errorf("balloon row should have a distance and never be consumed: %+v", last)
	}
	if data.Actors[2].Name != "insect 1" {
		t.Errorf("expected first target named \"insect 1\", got %q", data.Actors[2].Name)
	}
}

func TestGame_AvatarScaleSetting(t *testing.T) {
	g := newHeadless(t)
	g.step(noKeys)
	st := g.State()

	base := st.Transform(st.Avatar()).Col(0).Vec3().Len()
	if !near(base, config.Cfg().Scene.AvatarScale) {
		t.Errorf("expected configured scale %f, got %f", config.Cfg().Scene.AvatarScale, base)
	}

	g.settings.AvatarScale = 2
	g.step(noKeys)
	if got := st.Transform(st.Avatar()).Col(0).Vec3().Len(); !near(got, 2) {
		t.Errorf("expected scale 2 after the setting changed, got %f", got)
	}
}
