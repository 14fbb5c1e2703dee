// Package maps carries the sample maps shipped with the binary.
package maps

import _ "embed"

// Default is the map used when no map file is given on the command line.
//
//go:embed default.wmt
var Default []byte
