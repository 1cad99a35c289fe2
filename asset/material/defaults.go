package material

import "github.com/giuliojiang/pbrt-v3-blender-exporter/types"

var (
	DefaultDiffuse              = types.Vec3{0.75, 0.75, 0.75}
	DefaultSpecular             = types.Vec3{0.25, 0.25, 0.25}
	DefaultRoughness    float64 = 0.1
	DefaultReflectivity         = types.Vec3{0.9, 0.9, 0.9}
	DefaultMixAmount            = types.Vec3{0.9, 0.9, 0.9}
	DefaultEmitColor            = types.Vec3{1.0, 1.0, 1.0}
	MissingColor                = types.Vec3{1.0, 0.0, 1.0}
)
