package label

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// yamlLabelFile is the YAML structure of a label file.
type yamlLabelFile struct {
	Labels []string `yaml:"labels"`
}

// LoadFromFS reads a label file such as:
//
//	labels:
//	  - cat
//	  - dog
func LoadFromFS(fsys fs.FS, path string) (*Set, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes label file content.
func Parse(data []byte) (*Set, error) {
	var def yamlLabelFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse label file: %w", err)
	}
	return NewSet(def.Labels)
}
