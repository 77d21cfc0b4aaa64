// Package detection finds out which catalog tools are installed.
//
// A tool counts as installed when its executable resolves on PATH. For an
// installed tool the version command from its template is run with a
// timeout and the version is parsed from its output. Configuration files
// listed by the template are checked for existence and readability.
//
// Detection of many tools runs on a bounded worker pool. The Detector also
// implements dependency.InstalledProvider so the dependency service can mark
// tree nodes as installed.
package detection
