//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the game reading configs and assets from disk, so texture edits
// reload while it runs.
func (Run) Game() error {
	fmt.Println("Run spacewar...")
	_, err := executeCmd("go", withArgs("run", ".", "-config", "configs", "-assets", "assets", "-log-level", "debug"),
		withDir("cmd/game"), withStream())
	return err
}

// Replays a recorded session.
func (Run) Replay(file string) error {
	mg.Deps(Build.Game)
	_, err := executeCmd(binary, withArgs("-replay", file), withStream())
	return err
}
