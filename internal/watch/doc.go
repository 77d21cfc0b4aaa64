// Package watch reports changes to devenv's settings file and custom tool
// templates.
//
// Editors often save a file in several steps (truncate, write, rename), so
// raw filesystem events are coalesced per file and emitted once the file has
// been quiet for the debounce interval.
package watch
