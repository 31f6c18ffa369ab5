package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the pipeline file searched for when no explicit
// path is given.
const DefaultFileName = ".cicheck.yml"

// FindFile locates a pipeline file. An explicit path is used as-is and
// must exist. Otherwise the search walks up from startDir, stopping at
// the repository root (a directory containing .git), the home
// directory, or the filesystem root. Returns "" if no file was found.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("pipeline file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, _ := os.UserHomeDir()

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		path := filepath.Join(currentDir, DefaultFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		if currentDir == homeDir {
			break
		}

		gitPath := filepath.Join(currentDir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached filesystem root
			break
		}
		currentDir = parentDir
	}

	return "", nil
}

type fileGate struct {
	Args []string `yaml:"args"`
	Min  string   `yaml:"min"`
	Max  string   `yaml:"max"`
}

type fileCheck struct {
	Name        string            `yaml:"name"`
	Command     string            `yaml:"command"`
	Args        []string          `yaml:"args"`
	Dir         string            `yaml:"dir"`
	Env         map[string]string `yaml:"env"`
	Success     string            `yaml:"success"`
	ToolVersion *fileGate         `yaml:"tool_version"`
}

type pipelineFile struct {
	Checks []fileCheck `yaml:"checks"`
}

// Load parses a YAML pipeline file into a Registry. The file replaces
// the built-in pipeline wholesale; the order of entries is the
// execution order.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading the pipeline file
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}

	var file pipelineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(file.Checks) == 0 {
		return nil, fmt.Errorf("%s defines no checks", path)
	}

	defs := make([]CheckDefinition, 0, len(file.Checks))
	for _, fc := range file.Checks {
		def := CheckDefinition{
			Name:    fc.Name,
			Command: fc.Command,
			Args:    fc.Args,
			Dir:     fc.Dir,
			Env:     fc.Env,
			Success: SuccessPredicate(fc.Success),
		}
		if fc.ToolVersion != nil {
			def.Gate = &VersionGate{
				Args: fc.ToolVersion.Args,
				Min:  fc.ToolVersion.Min,
				Max:  fc.ToolVersion.Max,
			}
		}
		defs = append(defs, def)
	}

	reg, err := New(defs...)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline file %s: %w", path, err)
	}
	return reg, nil
}
