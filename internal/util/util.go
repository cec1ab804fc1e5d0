package util

// Unpack splits the fixed-shape `target mod args` triples the REPL's
// `inspect` command accepts (cmd/halcyon/repl.go) into named variables
// without a manual len-checked switch per call site. Callers get the
// same "ignore extra words, leave missing ones at their zero value"
// behavior SplitN already gives single fields, generalized to N.
func Unpack[T any](toUnpack []T, unpackInto ...*T) {
	if len(toUnpack) > len(unpackInto) {
		for i := range unpackInto {
			*unpackInto[i] = toUnpack[i]
		}
	} else {
		for i, str := range toUnpack {
			*unpackInto[i] = str
		}
	}
}
