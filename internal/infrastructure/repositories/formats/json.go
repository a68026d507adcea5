package formats

import (
	"fmt"
	"strconv"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// JSONParser reads JSON documents. Comments and trailing commas (JWCC) are
// accepted and stripped before parsing.
type JSONParser struct{}

// NewJSONParser creates a JSONParser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Format() entities.Format { return entities.FormatJSON }

func (p *JSONParser) Parse(content []byte) (map[string]string, error) {
	standard, err := hujson.Standardize(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrParse, err)
	}
	if !gjson.ValidBytes(standard) {
		return nil, fmt.Errorf("%w: invalid JSON document", entities.ErrParse)
	}

	root := gjson.ParseBytes(standard)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top-level JSON value must be an object", entities.ErrParse)
	}

	result := make(map[string]string)
	flattenJSON("", root, result)
	return result, nil
}

func flattenJSON(prefix string, value gjson.Result, out map[string]string) {
	switch {
	case value.IsObject():
		value.ForEach(func(key, child gjson.Result) bool {
			flattenJSON(join(prefix, key.String()), child, out)
			return true
		})
	case value.IsArray():
		index := 0
		value.ForEach(func(_, child gjson.Result) bool {
			flattenJSON(join(prefix, strconv.Itoa(index)), child, out)
			index++
			return true
		})
	case value.Type == gjson.Null:
		return
	case value.Type == gjson.Number:
		out[prefix] = value.Raw // keeps 1.50 and big integers as written
	default:
		out[prefix] = value.String()
	}
}
