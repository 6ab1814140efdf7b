// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"string-art/internal/synth"
	"string-art/internal/version"
)

// CurrentVersion is the file format version written by Save.
const CurrentVersion = 1

// Extension is the conventional project file extension.
const Extension = ".artproj"

// ErrUnsupportedVersion is returned by Load for files written by a newer format.
var ErrUnsupportedVersion = errors.New("project: unsupported file version")

// File represents a string-art project file (.artproj).
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Generator   string    `json:"generator"`
	Description string    `json:"description,omitempty"`

	// Source image path (relative to project file)
	SourceImagePath string `json:"source_image,omitempty"`

	// Tier is the product tier the parameters came from, if any.
	Tier string `json:"tier,omitempty"`

	Result *synth.Result `json:"result,omitempty"`
}

// New creates a new project file around a synthesis result.
func New(name string, res *synth.Result) *File {
	now := time.Now()
	return &File{
		Version:   CurrentVersion,
		Name:      name,
		Created:   now,
		Modified:  now,
		Generator: "string-art " + version.Version,
		Result:    res,
	}
}

// NameFromPath derives a project name from an image or project path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load loads a project from a .artproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if proj.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, proj.Version)
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// SetSourceImage sets the source image path (relative to project).
func (p *File) SetSourceImage(projectPath, imagePath string) {
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		p.SourceImagePath = imagePath
		p.Modified = time.Now()
		return
	}
	dir, err := filepath.Abs(filepath.Dir(projectPath))
	if err != nil {
		p.SourceImagePath = abs
		p.Modified = time.Now()
		return
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		p.SourceImagePath = abs
	} else {
		p.SourceImagePath = rel
	}
	p.Modified = time.Now()
}

// GetSourceImagePath returns the absolute path to the source image.
func (p *File) GetSourceImagePath(projectPath string) string {
	if p.SourceImagePath == "" {
		return ""
	}
	if filepath.IsAbs(p.SourceImagePath) {
		return p.SourceImagePath
	}
	return filepath.Join(filepath.Dir(projectPath), p.SourceImagePath)
}

// GetPreviewPath returns the default preview path next to the project.
func (p *File) GetPreviewPath(projectPath string) string {
	dir := filepath.Dir(projectPath)
	return filepath.Join(dir, NameFromPath(projectPath)+"_preview.png")
}

// GetStepsPath returns the default instructions path next to the project.
func (p *File) GetStepsPath(projectPath string) string {
	dir := filepath.Dir(projectPath)
	return filepath.Join(dir, NameFromPath(projectPath)+"_steps.txt")
}
