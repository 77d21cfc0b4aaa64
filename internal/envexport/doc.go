// Package envexport exports and imports developer environment snapshots.
//
// A snapshot records the detection results of every catalog tool and the
// user's custom tool templates. It is written as JSON (or YAML) to the
// configured download directory under a dated file name. Importing accepts
// both encodings, migrates schema 0.9 documents and classifies the imported
// custom templates as new, identical or conflicting with the local ones.
package envexport
