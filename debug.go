//go:build debug

package promreg

const debugBuild = true
