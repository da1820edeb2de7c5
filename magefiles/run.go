//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Writes the sample meshes and runs the viewer.
func (Run) Viewer() error {
	mg.Deps(Fixtures.Cube)
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}
