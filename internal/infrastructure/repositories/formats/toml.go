package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// TOMLParser reads TOML documents; tables become dotted key prefixes and
// arrays of tables get an index segment, e.g. servers.0.host.
//
// The document is validated with BurntSushi/toml, which rejects redefined
// keys and tables. Values are then taken verbatim from the go-toml
// expression parser, so 0x1F, 1.10 and 07:32:00 read back as written.
type TOMLParser struct{}

// NewTOMLParser creates a TOMLParser.
func NewTOMLParser() *TOMLParser {
	return &TOMLParser{}
}

func (p *TOMLParser) Format() entities.Format { return entities.FormatTOML }

func (p *TOMLParser) Parse(content []byte) (map[string]string, error) {
	document := make(map[string]any)
	if err := toml.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrParse, err)
	}

	walker := tomlWalker{out: make(map[string]string), arrayTables: make(map[string]int)}
	parser := unstable.Parser{}
	parser.Reset(content)
	for parser.NextExpression() {
		walker.expression(parser.Expression())
	}
	if err := parser.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrParse, err)
	}
	return walker.out, nil
}

type tomlWalker struct {
	out         map[string]string
	table       []string
	arrayTables map[string]int // resolved path -> elements seen so far
}

func (w *tomlWalker) expression(node *unstable.Node) {
	switch node.Kind {
	case unstable.Table:
		w.table = w.resolve(keySegments(node))
	case unstable.ArrayTable:
		segments := keySegments(node)
		path := append(w.resolve(segments[:len(segments)-1]), segments[len(segments)-1])
		name := strings.Join(path, ".")
		index := w.arrayTables[name]
		w.arrayTables[name] = index + 1
		w.table = append(path, strconv.Itoa(index))
	case unstable.KeyValue:
		w.value(joinAll(w.table, keySegments(node)), node.Value())
	}
}

// resolve inserts the current element index after every segment that names
// an array of tables, so [servers.tls] applies to the last [[servers]].
func (w *tomlWalker) resolve(segments []string) []string {
	path := make([]string, 0, len(segments))
	for _, segment := range segments {
		path = append(path, segment)
		if count, ok := w.arrayTables[strings.Join(path, ".")]; ok {
			path = append(path, strconv.Itoa(count-1))
		}
	}
	return path
}

func (w *tomlWalker) value(path []string, node *unstable.Node) {
	switch node.Kind {
	case unstable.InlineTable:
		children := node.Children()
		for children.Next() {
			child := children.Node()
			w.value(joinAll(path, keySegments(child)), child.Value())
		}
	case unstable.Array:
		children := node.Children()
		for index := 0; children.Next(); index++ {
			w.value(joinAll(path, []string{strconv.Itoa(index)}), children.Node())
		}
	default:
		w.out[strings.Join(path, ".")] = string(node.Data)
	}
}

func keySegments(node *unstable.Node) []string {
	var segments []string
	keys := node.Key()
	for keys.Next() {
		segments = append(segments, string(keys.Node().Data))
	}
	return segments
}

func joinAll(prefix, segments []string) []string {
	path := make([]string, 0, len(prefix)+len(segments))
	path = append(path, prefix...)
	return append(path, segments...)
}
