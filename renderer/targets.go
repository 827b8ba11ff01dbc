package renderer

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/pthm-cable/skyhunt/graph"
)

// Targets owns the off-screen framebuffers: one HDR target with two float color
// attachments (lit scene, bright-pass) and a depth buffer, plus two float
// ping-pong targets for the blur.
type Targets struct {
	Width, Height int32

	hdrFBO    uint32
	sceneTex  uint32
	brightTex uint32
	depthRBO  uint32
	pingFBO   [2]uint32
	pingTex   [2]uint32

	// Raylib views of the framebuffers, for BeginTextureMode and texture draws
	HDR    rl.RenderTexture2D
	Bright rl.Texture2D
	Ping   [2]rl.RenderTexture2D

	loaded bool
}

// NewTargets creates every framebuffer at w x h. An incomplete framebuffer is
// reported in the error, but the targets are still returned and usable; the
// frame just renders wrong.
func NewTargets(w, h int32) (*Targets, error) {
	t := &Targets{Width: w, Height: h}
	var errs []error

	// HDR target with two color attachments
	gl.GenFramebuffers(1, &t.hdrFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.hdrFBO)
	t.sceneTex = floatTexture(w, h)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.sceneTex, 0)
	t.brightTex = floatTexture(w, h)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT1, gl.TEXTURE_2D, t.brightTex, 0)

	gl.GenRenderbuffers(1, &t.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)

	attachments := []uint32{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT1}
	gl.DrawBuffers(int32(len(attachments)), &attachments[0])
	if err := checkFramebuffer("hdr"); err != nil {
		errs = append(errs, err)
	}

	// Ping-pong targets, color only
	for i := range t.pingFBO {
		gl.GenFramebuffers(1, &t.pingFBO[i])
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.pingFBO[i])
		t.pingTex[i] = floatTexture(w, h)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.pingTex[i], 0)
		if err := checkFramebuffer(fmt.Sprintf("ping%d", i)); err != nil {
			errs = append(errs, err)
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.HDR = rl.RenderTexture2D{
		ID:      t.hdrFBO,
		Texture: texture(t.sceneTex, w, h),
		Depth:   rl.Texture2D{ID: t.depthRBO, Width: w, Height: h},
	}
	t.Bright = texture(t.brightTex, w, h)
	for i := range t.Ping {
		t.Ping[i] = rl.RenderTexture2D{ID: t.pingFBO[i], Texture: texture(t.pingTex[i], w, h)}
	}
	t.loaded = true

	if len(errs) > 0 {
		return t, fmt.Errorf("framebuffer setup: %v", errs)
	}
	return t, nil
}

// Texture returns the texture behind an attachment.
func (t *Targets) Texture(a graph.Attachment) rl.Texture2D {
	switch a {
	case graph.SceneColor:
		return t.HDR.Texture
	case graph.BrightColor:
		return t.Bright
	case graph.PingVertical:
		return t.Ping[0].Texture
	case graph.PingHorizontal:
		return t.Ping[1].Texture
	}
	return rl.Texture2D{}
}

// RenderTexture returns the raylib view of a target. Screen has none.
func (t *Targets) RenderTexture(target graph.Target) (rl.RenderTexture2D, bool) {
	switch target {
	case graph.TargetHDR:
		return t.HDR, true
	case graph.TargetPingVertical:
		return t.Ping[0], true
	case graph.TargetPingHorizontal:
		return t.Ping[1], true
	}
	return rl.RenderTexture2D{}, false
}

// ClearHDR clears the lit attachment to bg, the bright-pass to black and depth.
// Must be called with the HDR target bound.
func (t *Targets) ClearHDR(bg [3]float32, depth bool) {
	flush()
	scene := [4]float32{bg[0], bg[1], bg[2], 1}
	black := [4]float32{0, 0, 0, 1}
	gl.ClearBufferfv(gl.COLOR, 0, &scene[0])
	gl.ClearBufferfv(gl.COLOR, 1, &black[0])
	if depth {
		gl.Clear(gl.DEPTH_BUFFER_BIT)
	}
}

// Unload deletes every framebuffer and texture. Safe to call more than once.
func (t *Targets) Unload() {
	if !t.loaded {
		return
	}
	gl.DeleteFramebuffers(1, &t.hdrFBO)
	gl.DeleteFramebuffers(int32(len(t.pingFBO)), &t.pingFBO[0])
	textures := []uint32{t.sceneTex, t.brightTex, t.pingTex[0], t.pingTex[1]}
	gl.DeleteTextures(int32(len(textures)), &textures[0])
	gl.DeleteRenderbuffers(1, &t.depthRBO)
	t.loaded = false
}

// floatTexture allocates an RGBA16F texture with linear filtering and edge clamping.
func floatTexture(w, h int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, w, h, 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

func texture(id uint32, w, h int32) rl.Texture2D {
	return rl.Texture2D{ID: id, Width: w, Height: h, Mipmaps: 1}
}

func checkFramebuffer(name string) error {
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		slog.Error("framebuffer incomplete", "target", name, "status", status)
		return fmt.Errorf("%s: status 0x%x", name, status)
	}
	return nil
}
