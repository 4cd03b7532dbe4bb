package piece

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrientedBounds returns the axis-aligned box enclosing a box with the given center,
// half extents and orientation.
func OrientedBounds(center, half rl.Vector3, rotation rl.Quaternion) rl.BoundingBox {
	minV := rl.NewVector3(0, 0, 0)
	maxV := rl.NewVector3(0, 0, 0)
	first := true
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				corner := rl.NewVector3(half.X*sx, half.Y*sy, half.Z*sz)
				c := rl.Vector3Add(center, rl.Vector3RotateByQuaternion(corner, rotation))
				if first {
					minV, maxV = c, c
					first = false
					continue
				}
				minV = rl.Vector3Min(minV, c)
				maxV = rl.Vector3Max(maxV, c)
			}
		}
	}
	return rl.NewBoundingBox(minV, maxV)
}

// Shrink scales a box around its center by factor (e.g. 0.85).
func Shrink(box rl.BoundingBox, factor float32) rl.BoundingBox {
	center := rl.Vector3Scale(rl.Vector3Add(box.Min, box.Max), 0.5)
	half := rl.Vector3Scale(rl.Vector3Subtract(box.Max, box.Min), 0.5*factor)
	return rl.NewBoundingBox(rl.Vector3Subtract(center, half), rl.Vector3Add(center, half))
}
