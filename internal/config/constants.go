// Package config holds the interpreter's build-time constants and its
// small user-overridable settings layer.
package config

// Version is the interpreter's reported version string.
const Version = "0.1.0"

// SourceFileExtension is the conventional extension for Lox source files.
const SourceFileExtension = ".lox"

// Exit codes, per the CLI contract: 0 success, 65 compile error, 70
// runtime error, 64 bad invocation.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitCompileError = 65
	ExitRuntimeError = 70
)
