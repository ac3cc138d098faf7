// Package storyboard defines the input boundary of the rendering engine: an
// ordered collection of narrated scenes plus presentation metadata, loaded
// from the storyboard.json the generation wizard produces.
package storyboard
