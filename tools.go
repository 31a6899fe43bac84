//go:build tools
// +build tools

package main

import (
	_ "github.com/golang/mock/mockgen"
	_ "github.com/google/addlicense"
	_ "github.com/mcubik/goverreport"
	_ "mvdan.cc/gofumpt"
)
