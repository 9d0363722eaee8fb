package bookcase

import "github.com/Carmen-Shannon/oxy-bookcase/common"

// BookcaseBuilderOption configures a Bookcase.
type BookcaseBuilderOption func(*bookcaseImpl)

// WithThickness sets the board thickness.
func WithThickness(t float32) BookcaseBuilderOption {
	return func(b *bookcaseImpl) {
		b.thickness = t
	}
}

// WithColors sets the color of the outer boards and shelves (main) and of the dividers (accent).
func WithColors(main, accent common.Color) BookcaseBuilderOption {
	return func(b *bookcaseImpl) {
		b.mainColor = main
		b.accentColor = accent
	}
}
