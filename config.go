package markup

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// fileOptions is the YAML shape of a serialization configuration file.
type fileOptions struct {
	OmitDeclaration bool   `yaml:"omit_declaration"`
	RootName        string `yaml:"root_name"`
	RootNamespace   string `yaml:"root_namespace"`
	Encoding        string `yaml:"encoding"`
	MaxDepth        int    `yaml:"max_depth"`
}

// LoadOptions reads a YAML configuration document and returns the
// equivalent assembly options. Unknown encodings are rejected here, before
// any serialization begins.
func LoadOptions(r io.Reader) ([]Option, error) {
	var fo fileOptions
	if err := yaml.NewDecoder(r).Decode(&fo); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}

	var opts []Option
	if fo.OmitDeclaration {
		opts = append(opts, WithOmitDeclaration())
	}
	if fo.RootName != "" {
		q := QualifiedName{LocalName: sanitizeName(fo.RootName), Namespace: fo.RootNamespace}
		opts = append(opts, WithRootName(q))
	}
	if fo.Encoding != "" {
		enc := Encoding(fo.Encoding)
		if err := enc.validate(); err != nil {
			return nil, err
		}
		opts = append(opts, WithEncoding(enc))
	}
	if fo.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(fo.MaxDepth))
	}
	return opts, nil
}
