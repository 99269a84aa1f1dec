//go:build !debug

package burst

import "github.com/rs/zerolog"

// Strict is false in release builds: misuse of a disposed engine is logged
// and ignored.
const Strict = false

func misuse(log zerolog.Logger, what string) {
	log.Warn().Msg(what)
}
