package main

import (
	"fmt"

	"github.com/akmonengine/particles/actor"
	"github.com/akmonengine/particles/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionDebugger instruments the narrow phase
type CollisionDebugger interface {
	DebugObject(label string, object *actor.Object)
	DebugCollision(a, b *actor.Object, points collider.CollisionPoints)
}

// SimpleDebugger prints to stdout
type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugObject(label string, object *actor.Object) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("   Position: %v\n", object.Transform.Position)
	fmt.Printf("   Velocity: %v\n", object.Velocity)
	fmt.Printf("   Collider: %v %+v\n", object.Collider.Type(), object.WorldCollider())
}

func (d *SimpleDebugger) DebugCollision(a, b *actor.Object, points collider.CollisionPoints) {
	if !points.HasCollision {
		fmt.Printf("   No collision (depth=%.6f)\n", points.Depth)
		return
	}
	fmt.Printf("   Collision between %v and %v\n", a.Collider.Type(), b.Collider.Type())
	fmt.Printf("   A: %v\n", points.A)
	fmt.Printf("   B: %v\n", points.B)
	fmt.Printf("   Normal: %v\n", points.Normal)
	fmt.Printf("   Depth: %.6f\n", points.Depth)
}

// SetupScene creates a ground plane and a sphere above it
func SetupScene() (*actor.Object, *actor.Object, CollisionDebugger) {
	ground := actor.NewObject(actor.NewTransform(), collider.NewPlane(mgl64.Vec3{0, 1, 0}, 0), 0)

	transform := actor.NewTransform()
	transform.Position = mgl64.Vec3{-5.0, 5.0, -5.0}
	ball := actor.NewObject(transform, collider.Sphere{Radius: 1.5}, 1.0)

	return ground, ball, &SimpleDebugger{}
}

// DropSphere integrates the sphere until it reaches the ground
func DropSphere() {
	fmt.Println("Sphere dropped on a plane")
	fmt.Println("=========================")

	ground, ball, debugger := SetupScene()
	gravity := mgl64.Vec3{0, -9.81, 0}

	debugger.DebugObject("Ground", ground)
	debugger.DebugObject("Ball", ball)
	fmt.Println()

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 200

	for step := 0; step < maxSteps; step++ {
		ball.Integrate(dt, gravity)

		points := ground.TestCollision(ball)
		if points.HasCollision {
			fmt.Printf("--- STEP %d ---\n", step+1)
			debugger.DebugObject("Ball", ball)
			debugger.DebugCollision(ground, ball, points)
			return
		}
	}

	fmt.Println("The ball never reached the ground")
}

// CompareSpheres prints the collision points of a few sphere pairs
func CompareSpheres() {
	fmt.Println("Sphere pairs")
	fmt.Println("============")

	pairs := []struct {
		label string
		a, b  collider.Sphere
	}{
		{"overlapping", collider.Sphere{Radius: 20}, collider.Sphere{Center: mgl64.Vec3{20, 20, 20}, Radius: 20}},
		{"contained", collider.Sphere{Center: mgl64.Vec3{1, 0, 0}, Radius: 10}, collider.Sphere{Radius: 2}},
		{"apart", collider.Sphere{Radius: 1}, collider.Sphere{Center: mgl64.Vec3{10, 10, 10}, Radius: 1}},
	}

	debugger := &SimpleDebugger{}
	for _, pair := range pairs {
		fmt.Printf("--- %s ---\n", pair.label)
		a := actor.NewObject(actor.NewTransform(), pair.a, 1.0)
		b := actor.NewObject(actor.NewTransform(), pair.b, 1.0)
		debugger.DebugCollision(a, b, a.TestCollision(b))
	}
	fmt.Println()
}

func main() {
	CompareSpheres()
	DropSphere()
}
