//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Viewer runs the orrery with debug logging and shader hot reload.
func (Run) Viewer() error {
	mg.Deps(Build.Shaders)
	fmt.Println("Run viewer...")
	_, err := executeCmd("go", withArgs("run", mainPkg, "--debug", "--watch", "--shader-dir", shadersDir), withStream())
	return err
}
