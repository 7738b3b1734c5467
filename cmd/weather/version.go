package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-weather/pkg/version"
)

type VersionCommand struct{}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}
