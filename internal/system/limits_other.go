//go:build !unix

package system

// InitResourceLimits is a no-op where RLIMIT_NOFILE does not exist.
func InitResourceLimits() {}
