//go:build !nometrics

package metric

// Disabled reports whether this build turns metrics off. It is false in
// regular builds; compiling with the "nometrics" tag flips it to true,
// which makes new definitions default to disabled.
const Disabled = false
