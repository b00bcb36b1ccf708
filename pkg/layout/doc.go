// Package layout combines the constraint solution, auto-layout
// containers, and text measurement into a concrete LayoutTree with
// absolute geometry (spec §4.6). It is the one stage that turns an
// element's identity (a path from the document root) into a durable
// node id, so it also owns hit testing (spec §4.6 "Hit testing") over
// the tree it produces.
package layout
