//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	binDir     = "bin"
	mainPkg    = "./cmd/orrery"
	shadersDir = "internal/engine/renderer/shaders"
)

type Build mg.Namespace

// Viewer builds the orrery binary into bin/.
func (Build) Viewer() error {
	out := filepath.Join(binDir, "orrery")
	_, err := executeCmd("go", withArgs("build", "-o", out, mainPkg), withStream())
	return err
}

// Shaders checks the GLSL sources with glslangValidator.
func (Build) Shaders() error {
	for _, name := range []string{"planet.vert", "planet.frag"} {
		if _, err := executeCmd("glslangValidator", withArgs(filepath.Join(shadersDir, name)), withStream()); err != nil {
			return err
		}
	}
	return nil
}
