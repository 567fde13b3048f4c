//go:build race

package promreg

const raceBuild = true
