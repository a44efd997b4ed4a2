//go:build !ebiten

package gui

import "context"

// Run reports that the window needs the ebiten build tag.
func Run(context.Context, Options) error { return ErrUnavailable }
