package common

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
const DegToRad = math32.Pi / 180

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix compatible with WebGPU clip space [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (0,0,1 for this Z-up scene)
func LookAt(out []float32, eye, center, up Point3) {
	z := eye.Sub(center)
	val := z.LengthSq()
	if val == 0 {
		val = 1
	}
	z = z.Scale(1.0 / math32.Sqrt(val))

	x := Cross(up, z)
	val = x.LengthSq()
	if val == 0 {
		val = 1
	}
	x = x.Scale(1.0 / math32.Sqrt(val))

	y := Cross(z, x)

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -Dot(x, eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -Dot(y, eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -Dot(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// Cross returns the cross product a × b.
func Cross(a, b Point3) Point3 {
	return Point3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Dot returns the dot product a · b.
func Dot(a, b Point3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
