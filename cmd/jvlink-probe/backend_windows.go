//go:build windows

package main

import "github.com/cariandrum22/Xanthos-sub000/pkg/client"

func newBackend() (client.Contract, func(), error) {
	native, err := client.NewNative()
	if err != nil {
		return nil, func() {}, err
	}
	return native, func() { native.Release() }, nil
}

const backendKind = "native"
