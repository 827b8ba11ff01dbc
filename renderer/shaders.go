package renderer

import (
	_ "embed"
)

// Shader sources are compiled into the binary so the renderer runs from any
// working directory.

//go:embed shaders/lit.vs
var litVS string

//go:embed shaders/lit.fs
var litFS string

//go:embed shaders/blend.vs
var blendVS string

//go:embed shaders/blend.fs
var blendFS string

//go:embed shaders/skybox.vs
var skyboxVS string

//go:embed shaders/skybox.fs
var skyboxFS string

//go:embed shaders/quad.vs
var quadVS string

//go:embed shaders/blur.fs
var blurFS string

//go:embed shaders/composite.fs
var compositeFS string
