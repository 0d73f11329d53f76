// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirseerhq/sirseer-bugtrace/internal/analysis"
)

// FileEmitter writes the three analysis artifacts into a directory.
// File names derive from the repository name:
//
//	{repo}_pulls.txt
//	{repo}_pulls.csv
//	{repo}_pulls.json
type FileEmitter struct {
	// Dir is the destination directory. Empty means the current
	// working directory.
	Dir string
}

// NewFileEmitter returns an emitter that writes artifacts into dir.
func NewFileEmitter(dir string) *FileEmitter {
	if dir == "" {
		dir = "."
	}
	return &FileEmitter{Dir: dir}
}

// Emit writes the text, CSV, and JSON artifacts for result, creating or
// truncating each file. The first failure aborts the remaining
// artifacts; files already written stay on disk.
func (e *FileEmitter) Emit(result *analysis.Result) error {
	artifacts := []struct {
		path  string
		write func(io.Writer, *analysis.Result) error
	}{
		{e.ArtifactPath(result.Repo, "txt"), WriteText},
		{e.ArtifactPath(result.Repo, "csv"), WriteCSV},
		{e.ArtifactPath(result.Repo, "json"), WriteJSON},
	}
	for _, a := range artifacts {
		if err := writeArtifact(a.path, result, a.write); err != nil {
			return err
		}
	}
	return nil
}

// ArtifactPath returns the destination path for one artifact extension.
func (e *FileEmitter) ArtifactPath(repo, ext string) string {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("%s_pulls.%s", repo, ext))
}

func writeArtifact(path string, result *analysis.Result, write func(io.Writer, *analysis.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
