//go:build !norbdchecks

package spatial

// checkFrames gates the frame-equality assertions sprinkled through this
// package: design-level invariants, not recoverable runtime conditions,
// so they're only worth paying for while a mechanism's wiring is still
// under development. Building with -tags norbdchecks switches to
// checks_release.go, which compiles the checks out of the hot loop
// entirely for callers who have already exercised a mechanism under the
// checked build.
const checkFrames = true
