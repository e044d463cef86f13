package utils

// Assert panics when an internal invariant does not hold. Use only for
// conditions that are bugs when false, never for caller input.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}
