// Package version carries the build version stamped at link time.
package version

// Version is overridden via -ldflags at release builds.
var Version = "0.1.0"
