// Package components defines ECS components for the scene's actors.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/motion"
)

// Role is what an actor does in the game.
type Role uint8

const (
	RolePredator   Role = iota // Consumes the avatar on contact
	RoleAvatar                 // Player-controlled, consumes targets
	RoleTarget                 // Consumed by the avatar
	RoleDecorative             // Rendered only, no game state
)

// String returns the role's display name.
func (r Role) String() string {
	switch r {
	case RolePredator:
		return "predator"
	case RoleAvatar:
		return "avatar"
	case RoleTarget:
		return "target"
	case RoleDecorative:
		return "decorative"
	default:
		return "unknown"
	}
}

// Mesh identifies which loaded model draws an actor.
type Mesh uint8

const (
	MeshNone Mesh = iota
	MeshBalloon
	MeshFalcon
	MeshBird
	MeshInsect
)

// Actor identifies an entity in the scene.
type Actor struct {
	Role  Role
	Index int    // Position within its role; targets use it for ordering and HUD text
	Name  string // Display name for logs and the overlay
	Mesh  Mesh
}

// Position is an actor's world position as seen by game logic.
type Position struct {
	mgl32.Vec3
}

// Transform is an actor's world transform as seen by the renderer.
type Transform struct {
	mgl32.Mat4
}

// Motion describes how an actor's transform is derived from time.
type Motion struct {
	Curve  motion.Curve
	Anchor mgl32.Vec3 // World translation applied before the curve
	Probe  mgl32.Vec3 // Offset from the transform's translation to the logic position
}

// Consumable marks actors that can be eaten. Once Consumed it stays so until a reset.
type Consumable struct {
	Consumed bool
}
