// Package catalog holds the tool templates devenv knows about.
//
// A template says how to detect a tool (executable name and version command),
// where its configuration files live, how to install it (Homebrew or shell
// script) and which other tools it depends on.
//
// The catalog is the built-in templates followed by the user's custom
// templates, which are YAML files in <config>/tools/. A custom template can
// never replace or delete a built-in one. Store.Catalog turns the merged list
// into the dependency.Catalog used for resolution.
package catalog
