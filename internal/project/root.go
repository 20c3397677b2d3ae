// Package project provides utilities for detecting project root directories.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wizzomafizzo/rebrand/internal/constants"
)

// Markers identify the root of a Gradle/KMP project, in order of preference.
var Markers = []string{"settings.gradle.kts", "settings.gradle", ".git"}

// FindRoot finds the project root directory.
func FindRoot() (string, error) {
	if root, found := checkProjectDirEnv(); found {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	if root, found := findProjectMarker(cwd); found {
		return root, nil
	}

	// Fall back to current working directory
	return cwd, nil
}

// FindProjectMarkerFrom finds the project root directory starting from the given directory.
func FindProjectMarkerFrom(startDir string) (string, bool) {
	return findProjectMarker(startDir)
}

// checkProjectDirEnv checks if REBRAND_PROJECT_DIR is set to an existing directory
func checkProjectDirEnv() (string, bool) {
	dir := os.Getenv(constants.ProjectDirEnv)
	if dir == "" {
		return "", false
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", false
	}

	return abs, true
}

// findProjectMarker searches for project root markers starting from the given directory
func findProjectMarker(startDir string) (string, bool) {
	currentDir := startDir

	for {
		if hasProjectMarker(currentDir, Markers) {
			return currentDir, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}

		currentDir = parentDir
	}

	return "", false
}

// hasProjectMarker checks if any of the given markers exist in the directory
func hasProjectMarker(dir string, markers []string) bool {
	for _, marker := range markers {
		markerPath := filepath.Join(dir, marker)
		if _, err := os.Stat(markerPath); err == nil {
			return true
		}
	}
	return false
}
