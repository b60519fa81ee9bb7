//go:build norbdchecks

package spatial

// checkFrames is false in the norbdchecks build; see checks.go.
const checkFrames = false
