// Package graph describes the frame's render passes as data and runs them in order.
//
// A Graph is a fixed list of passes. Each pass names the attachments it samples,
// the target it draws into and a predicate over the frame's Features that decides
// whether it runs. The Executor walks the list once per frame; a pass with a blur
// spec is expanded into its ping-pong iterations.
package graph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Target is a framebuffer a pass can draw into.
type Target uint8

const (
	TargetHDR            Target = iota // Lit scene + bright-pass, with depth
	TargetPingVertical                 // Ping-pong buffer 0
	TargetPingHorizontal               // Ping-pong buffer 1
	TargetScreen                       // Default framebuffer
)

var targetNames = [...]string{"hdr", "ping_vertical", "ping_horizontal", "screen"}

// String returns the target's name.
func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("target(%d)", t)
}

// Attachment is a texture a pass can sample.
type Attachment uint8

const (
	SceneColor     Attachment = iota // HDR color attachment 0
	BrightColor                      // HDR color attachment 1
	PingVertical                     // Color of TargetPingVertical
	PingHorizontal                   // Color of TargetPingHorizontal

	// BlurResult resolves to whichever ping-pong buffer the blur pass wrote
	// last. It is dropped from a pass's inputs when the blur did not run.
	BlurResult
)

var attachmentNames = [...]string{"scene_color", "bright_color", "ping_vertical", "ping_horizontal", "blur_result"}

// String returns the attachment's name.
func (a Attachment) String() string {
	if int(a) < len(attachmentNames) {
		return attachmentNames[a]
	}
	return fmt.Sprintf("attachment(%d)", a)
}

// ColorOf returns the attachment a ping-pong target renders into.
func ColorOf(t Target) (Attachment, bool) {
	switch t {
	case TargetPingVertical:
		return PingVertical, true
	case TargetPingHorizontal:
		return PingHorizontal, true
	}
	return 0, false
}

// ClearMask selects which buffers a pass clears before drawing.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth

	ClearNone ClearMask = 0
	ClearAll            = ClearColor | ClearDepth
)

// Features are the per-frame toggles pass predicates look at.
type Features struct {
	Bloom    bool
	HDR      bool
	Exposure float32
	Gamma    float32
}

// Always is a predicate for passes that run every frame.
func Always(Features) bool { return true }

// BloomEnabled is the blur pass predicate.
func BloomEnabled(f Features) bool { return f.Bloom }

// BlurSpec expands a pass into ping-pong iterations.
type BlurSpec struct {
	Iterations      int
	StartHorizontal bool
	Source          Attachment // Read by the first iteration
}

// Pass is one entry in the graph.
type Pass struct {
	Name    string
	Reads   []Attachment
	Writes  Target
	Clear   ClearMask
	Enabled func(Features) bool // nil means Always
	Blur    *BlurSpec
	Draw    func(ctx *Context)
}

// Context is handed to a pass's Draw callback.
type Context struct {
	Pass     *Pass
	Features Features
	Inputs   []Attachment // Reads with BlurResult resolved or dropped
	Target   Target

	// Set for blur iterations only
	Step *BlurStep
}

// Has reports whether an attachment is among the resolved inputs.
func (c *Context) Has(a Attachment) bool {
	for _, in := range c.Inputs {
		if in == a {
			return true
		}
	}
	return false
}

// Graph is an ordered, fixed pass list.
type Graph struct {
	Passes []Pass
}

// Validate checks that the list is runnable: names are unique, blur passes
// write ping-pong buffers and BlurResult is only read after a blur pass.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Passes))
	blurSeen := false
	for i := range g.Passes {
		p := &g.Passes[i]
		if p.Name == "" {
			return fmt.Errorf("pass %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate pass %q", p.Name)
		}
		seen[p.Name] = true

		for _, r := range p.Reads {
			if r == BlurResult && !blurSeen {
				return fmt.Errorf("pass %q reads %s before any blur pass", p.Name, r)
			}
		}
		if p.Blur != nil {
			if p.Blur.Iterations < 0 {
				return fmt.Errorf("pass %q has negative blur iterations", p.Name)
			}
			blurSeen = true
		}
	}
	return nil
}

// Uniforms sets shader parameters by name.
type Uniforms interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, v mgl32.Mat4)
}

// Backend binds and clears targets for the executor.
type Backend interface {
	Bind(t Target)
	Clear(t Target, mask ClearMask)
}
