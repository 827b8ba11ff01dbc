// Package assets loads models, textures and cubemaps for the renderer.
//
// Load failures never abort: they are logged and an invalid handle (ID 0,
// no meshes) is returned. Drawing an invalid handle is a no-op in the renderer.
package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CubeFaces is the number of images in a cubemap, ordered +X, -X, +Y, -Y, +Z, -Z.
const CubeFaces = 6

// ErrFaceCount is returned for a cubemap with the wrong number of faces.
var ErrFaceCount = errors.New("cubemap needs six faces")

// Library caches loaded assets by path and unloads them together.
type Library struct {
	models   map[string]rl.Model
	textures map[string]rl.Texture2D
	cubemaps []rl.Texture2D
	failures []string
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		models:   make(map[string]rl.Model),
		textures: make(map[string]rl.Texture2D),
	}
}

// Failures returns the paths that could not be loaded.
func (l *Library) Failures() []string { return l.failures }

func (l *Library) fail(kind, path string, err error) {
	slog.Warn("asset load failed", "kind", kind, "path", path, "error", err)
	l.failures = append(l.failures, path)
}

// LoadModel loads a model and its materials.
func (l *Library) LoadModel(path string) rl.Model {
	if m, ok := l.models[path]; ok {
		return m
	}
	if err := exists(path); err != nil {
		l.fail("model", path, err)
		return rl.Model{}
	}
	m := rl.LoadModel(path)
	if !ModelValid(m) {
		l.fail("model", path, errors.New("no meshes"))
		return rl.Model{}
	}
	l.models[path] = m
	return m
}

// LoadTexture loads a 2D texture.
func (l *Library) LoadTexture(path string) rl.Texture2D {
	if t, ok := l.textures[path]; ok {
		return t
	}
	if err := exists(path); err != nil {
		l.fail("texture", path, err)
		return rl.Texture2D{}
	}
	t := rl.LoadTexture(path)
	if t.ID == 0 {
		l.fail("texture", path, errors.New("decode failed"))
		return rl.Texture2D{}
	}
	l.textures[path] = t
	return t
}

// LoadCubemap builds a cubemap from six face images. Faces are resized to the
// first face's size.
func (l *Library) LoadCubemap(paths []string) rl.Texture2D {
	if len(paths) != CubeFaces {
		l.fail("cubemap", fmt.Sprint(paths), ErrFaceCount)
		return rl.Texture2D{}
	}
	for _, p := range paths {
		if err := exists(p); err != nil {
			l.fail("cubemap", p, err)
			return rl.Texture2D{}
		}
	}

	faces := make([]*rl.Image, 0, CubeFaces)
	defer func() {
		for _, img := range faces {
			rl.UnloadImage(img)
		}
	}()
	for _, p := range paths {
		img := rl.LoadImage(p)
		if img == nil || img.Width == 0 || img.Height == 0 {
			l.fail("cubemap", p, errors.New("decode failed"))
			return rl.Texture2D{}
		}
		faces = append(faces, img)
	}

	// Horizontal strip in face order
	size := faces[0].Width
	strip := rl.GenImageColor(int(size)*CubeFaces, int(size), rl.Black)
	defer rl.UnloadImage(strip)
	for i, img := range faces {
		if img.Width != size || img.Height != size {
			rl.ImageResize(img, size, size)
		}
		src := rl.NewRectangle(0, 0, float32(size), float32(size))
		dst := rl.NewRectangle(float32(int32(i)*size), 0, float32(size), float32(size))
		rl.ImageDraw(strip, img, src, dst, rl.White)
	}

	tex := rl.LoadTextureCubemap(strip, rl.CubemapLayoutLineHorizontal)
	if tex.ID == 0 {
		l.fail("cubemap", paths[0], errors.New("upload failed"))
		return rl.Texture2D{}
	}
	l.cubemaps = append(l.cubemaps, tex)
	return tex
}

// Unload frees everything the library loaded.
func (l *Library) Unload() {
	for path, m := range l.models {
		rl.UnloadModel(m)
		delete(l.models, path)
	}
	for path, t := range l.textures {
		rl.UnloadTexture(t)
		delete(l.textures, path)
	}
	for _, t := range l.cubemaps {
		rl.UnloadTexture(t)
	}
	l.cubemaps = nil
}

// ModelValid reports whether a model has anything to draw.
func ModelValid(m rl.Model) bool {
	return m.MeshCount > 0 && m.Meshes != nil
}

func exists(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	return nil
}
