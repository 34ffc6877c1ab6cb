//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binary = "bin/spacewar"

type Build mg.Namespace

// Tidies the module and builds the game binary into bin/.
func (Build) Game() error {
	if err := goModTidy(); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binary, "./cmd/game"), withStream())
	return err
}

// Vets every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
