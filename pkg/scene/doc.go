// Package scene flattens a solved layout.Tree into a deterministic,
// ordered sequence of render commands (spec §4.7): Rect, RoundedRect,
// Ellipse, Path, Text, Shadow, PushClip, PopClip, SetOpacity. The
// package has no rendering back-end of its own; pkg/export is one
// example consumer.
package scene
