//go:build stringart_debug

package synth

import "fmt"

func defect(format string, args ...any) {
	panic("synth: " + fmt.Sprintf(format, args...))
}
