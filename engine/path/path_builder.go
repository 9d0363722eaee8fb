package path

type CameraPathBuilderOption func(*cameraPathImpl)

// WithCurveType sets the curve parameterisation.
//
// Parameters:
//   - curveType: one of CurveCatmullRom, CurveCentripetal or CurveChordal
//
// Returns:
//   - CameraPathBuilderOption: a function that sets the curve type
func WithCurveType(curveType CurveType) CameraPathBuilderOption {
	return func(p *cameraPathImpl) {
		p.curveType = curveType
	}
}

// WithTension sets the tangent scale of the uniform Catmull-Rom curve. Other curve types ignore it.
//
// Parameters:
//   - tension: tangent scale, 0.5 for the classic spline
//
// Returns:
//   - CameraPathBuilderOption: a function that sets the tension
func WithTension(tension float32) CameraPathBuilderOption {
	return func(p *cameraPathImpl) {
		p.tension = tension
	}
}

// WithPrecision sets the number of visualisation samples per segment. Values below 1 are ignored.
//
// Parameters:
//   - precision: samples per segment
//
// Returns:
//   - CameraPathBuilderOption: a function that sets the precision
func WithPrecision(precision int) CameraPathBuilderOption {
	return func(p *cameraPathImpl) {
		if precision > 0 {
			p.precision = precision
		}
	}
}

// WithArcLengthDivisions sets the resolution of the arc length table. Values below 1 are ignored.
//
// Parameters:
//   - divisions: number of table intervals
//
// Returns:
//   - CameraPathBuilderOption: a function that sets the table resolution
func WithArcLengthDivisions(divisions int) CameraPathBuilderOption {
	return func(p *cameraPathImpl) {
		if divisions > 0 {
			p.divisions = divisions
		}
	}
}
