package entities

import "fmt"

// Format is the closed set of file formats a property source can read.
type Format string

const (
	// FormatPlain maps each key to a file; the file content is the value.
	FormatPlain      Format = "plain"
	FormatProperties Format = "properties"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTOML       Format = "toml"
	FormatHCL        Format = "hcl"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatPlain, FormatProperties, FormatJSON, FormatYAML, FormatTOML, FormatHCL}
}

// ParseFormat validates a format name. Empty means FormatProperties.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatProperties, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", name)
}

// IsStructured reports whether the format holds many keys in a single file.
func (f Format) IsStructured() bool {
	return f != FormatPlain
}
