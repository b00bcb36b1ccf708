// Package constraints solves a system of linear constraints over named
// variables using a Big-M simplex tableau, with non-required
// constraints lowered to weighted error variables so the objective
// minimizes total priority-weighted violation (spec §4.5). The package
// knows nothing about elements, frames, or layout: pkg/layout builds a
// System from the resolved, expanded AST and decodes the Solution back
// into concrete geometry.
package constraints
