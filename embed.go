// Package confirmationservice carries assets embedded at the module root.
package confirmationservice

import "embed"

//go:embed locales
var Locales embed.FS
