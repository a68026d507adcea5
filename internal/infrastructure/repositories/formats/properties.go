package formats

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/magiconair/properties"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// surrogatePairLength is the length of `\uD83D\uDE00`.
const surrogatePairLength = 12

// PropertiesParser reads Java-style .properties files. Values are returned
// unexpanded; ${name} references are left to the resolution pipeline.
type PropertiesParser struct {
	loader properties.Loader
}

// NewPropertiesParser creates a PropertiesParser.
func NewPropertiesParser() *PropertiesParser {
	return &PropertiesParser{
		loader: properties.Loader{Encoding: properties.UTF8, DisableExpansion: true},
	}
}

func (p *PropertiesParser) Format() entities.Format { return entities.FormatProperties }

func (p *PropertiesParser) Parse(content []byte) (map[string]string, error) {
	document, err := p.loader.LoadBytes([]byte(combineSurrogates(string(content))))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrParse, err)
	}
	return document.Map(), nil
}

// combineSurrogates rewrites escaped UTF-16 surrogate pairs such as
// \uD83D\uDE00 as the character they encode. The properties lexer decodes
// each \uXXXX on its own, which turns either half of a pair into U+FFFD.
func combineSurrogates(content string) string {
	if !strings.Contains(content, `\u`) {
		return content
	}

	var out strings.Builder
	out.Grow(len(content))
	for i := 0; i < len(content); i++ {
		if content[i] != '\\' || i+1 == len(content) {
			out.WriteByte(content[i])
			continue
		}
		if r, ok := surrogatePair(content[i:]); ok {
			out.WriteRune(r)
			i += surrogatePairLength - 1
			continue
		}
		// any other escape, including "\\", passes through untouched
		out.WriteString(content[i : i+2])
		i++
	}
	return out.String()
}

func surrogatePair(s string) (rune, bool) {
	if len(s) < surrogatePairLength || s[1] != 'u' || s[6] != '\\' || s[7] != 'u' {
		return 0, false
	}
	high, err := strconv.ParseUint(s[2:6], 16, 16)
	if err != nil {
		return 0, false
	}
	low, err := strconv.ParseUint(s[8:12], 16, 16)
	if err != nil {
		return 0, false
	}
	r := utf16.DecodeRune(rune(high), rune(low))
	return r, r != unicode.ReplacementChar
}
