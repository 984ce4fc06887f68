package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// collider lives on the ground plane: world X maps to cp X, world Z to cp Y.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Width  float64
	Depth  float64
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
