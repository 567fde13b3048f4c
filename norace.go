//go:build !race

package promreg

const raceBuild = false
