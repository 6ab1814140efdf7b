//go:build !stringart_debug

package synth

import "fmt"

// defect reports a broken internal invariant. Release builds log it and
// let the caller clamp; build with -tags stringart_debug to panic instead.
func defect(format string, args ...any) {
	Logger().Warn("internal defect", "detail", fmt.Sprintf(format, args...))
}
