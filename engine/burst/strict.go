//go:build debug

package burst

import "github.com/rs/zerolog"

// Strict is true in debug builds: misuse of a disposed engine panics.
const Strict = true

func misuse(log zerolog.Logger, what string) {
	log.Error().Msg(what)
	panic("burst: " + what)
}
