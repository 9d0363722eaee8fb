package viewpoint

import "github.com/rs/zerolog"

// StoreBuilderOption configures a Store.
type StoreBuilderOption func(*storeImpl)

// WithMarkerSink sets where viewpoint markers are drawn. A nil sink draws nothing.
func WithMarkerSink(sink MarkerSink) StoreBuilderOption {
	return func(s *storeImpl) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithModes replaces the editor mode cycle. Invalid modes are dropped; an empty result keeps DefaultModes.
//
// Parameters:
//   - modes: the modes NextMode cycles through, in order
func WithModes(modes ...Mode) StoreBuilderOption {
	return func(s *storeImpl) {
		valid := make([]Mode, 0, len(modes))
		for _, m := range modes {
			if m.Valid() {
				valid = append(valid, m)
			}
		}
		if len(valid) > 0 {
			s.modes = valid
		}
	}
}

// WithLogger sets the logger used for load and decode failures.
func WithLogger(logger zerolog.Logger) StoreBuilderOption {
	return func(s *storeImpl) {
		s.logger = logger
	}
}
