//go:build mage

package main

import (
	"fmt"
	"os/exec"

	"github.com/magefile/mage/sh"
)

// Pull fetches the docling converter image with the first available
// container runtime, so `lexis convert` works offline afterwards.
func Pull() error {
	for _, rt := range []string{"docker", "podman"} {
		if _, err := exec.LookPath(rt); err != nil {
			continue
		}
		if err := sh.RunV(rt, "pull", "docling:latest"); err != nil {
			return fmt.Errorf("%s pull: %w", rt, err)
		}
		return nil
	}
	return fmt.Errorf("no container runtime found: install docker or podman")
}
