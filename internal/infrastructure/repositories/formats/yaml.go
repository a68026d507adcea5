package formats

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

const (
	yamlNullTag  = "!!null"
	yamlMergeTag = "!!merge"
)

// YAMLParser reads YAML documents into dotted keys. Scalars keep the text
// written in the file, so "1.10" stays "1.10" and "0755" stays "0755".
type YAMLParser struct{}

// NewYAMLParser creates a YAMLParser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) Format() entities.Format { return entities.FormatYAML }

func (p *YAMLParser) Parse(content []byte) (map[string]string, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrParse, err)
	}

	result := make(map[string]string)
	root := &document
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return result, nil // empty file
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)

	switch {
	case root.Kind == 0:
		return result, nil
	case root.Kind == yaml.MappingNode:
		flattenNode("", root, result)
		return result, nil
	default:
		return nil, fmt.Errorf("%w: top-level YAML value must be a mapping", entities.ErrParse)
	}
}

func flattenNode(prefix string, node *yaml.Node, out map[string]string) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		// merged mappings first, so the mapping's own keys override them
		for i := len(node.Content) - 2; i >= 0; i -= 2 {
			if node.Content[i].ShortTag() == yamlMergeTag {
				mergeNode(prefix, node.Content[i+1], out)
			}
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.ShortTag() == yamlMergeTag {
				continue
			}
			flattenNode(join(prefix, resolveAlias(key).Value), node.Content[i+1], out)
		}
	case yaml.SequenceNode:
		for i, child := range node.Content {
			flattenNode(join(prefix, strconv.Itoa(i)), child, out)
		}
	case yaml.ScalarNode:
		if prefix == "" || node.ShortTag() == yamlNullTag {
			return
		}
		out[prefix] = node.Value
	}
}

// mergeNode applies a "<<" value, either one mapping or a sequence of them
// where earlier mappings win.
func mergeNode(prefix string, value *yaml.Node, out map[string]string) {
	value = resolveAlias(value)
	if value.Kind != yaml.SequenceNode {
		flattenNode(prefix, value, out)
		return
	}
	for i := len(value.Content) - 1; i >= 0; i-- {
		flattenNode(prefix, value.Content[i], out)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
