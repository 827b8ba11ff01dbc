package game

import "github.com/go-gl/mathgl/mgl32"

// toArray converts a vector to the persisted layout.
func toArray(v mgl32.Vec3) [3]float32 {
	return [3]float32{v.X(), v.Y(), v.Z()}
}

// fromArray converts a persisted triple to a vector.
func fromArray(a [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0], a[1], a[2]}
}
