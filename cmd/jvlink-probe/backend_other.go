//go:build !windows

package main

import (
	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/pkg/client"
)

// newBackend falls back to the in-memory Stub on non-Windows builds,
// since the native backend is COM automation and only compiles under
// //go:build windows (pkg/client/native_windows.go).
func newBackend() (client.Contract, func(), error) {
	logger.Warn("jvlink-probe: native backend unavailable on this platform, using in-memory stub")
	stub := client.NewStub()
	seedDemoScript(stub)
	return stub, func() {}, nil
}

const backendKind = "stub"
