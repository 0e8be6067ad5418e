//go:build nometrics

package metric

// Disabled reports whether this build turns metrics off. Builds carrying
// the "nometrics" tag set it to true, which makes new definitions default
// to disabled.
const Disabled = true
