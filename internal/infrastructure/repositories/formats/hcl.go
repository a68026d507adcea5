package formats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

const hclFilename = "properties.hcl"

// HCLParser reads HCL files. Attributes become keys; blocks prefix their
// attributes with the block type and labels, e.g.
//
//	database "primary" { port = 5432 }   ->   database.primary.port = 5432
//
// Expressions must be constant: references to variables or functions fail
// with entities.ErrParse.
type HCLParser struct{}

// NewHCLParser creates an HCLParser.
func NewHCLParser() *HCLParser {
	return &HCLParser{}
}

func (p *HCLParser) Format() entities.Format { return entities.FormatHCL }

func (p *HCLParser) Parse(content []byte) (map[string]string, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(content, hclFilename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", entities.ErrParse, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected HCL body type %T", entities.ErrParse, file.Body)
	}

	walker := hclWalker{src: content, out: make(map[string]string)}
	if err := walker.body("", body); err != nil {
		return nil, err
	}
	return walker.out, nil
}

// hclWalker flattens a parsed body. Number literals are copied from the
// source, so 1.10 and 1e3 read back as written.
type hclWalker struct {
	src []byte
	out map[string]string
}

func (w *hclWalker) body(prefix string, body *hclsyntax.Body) error {
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.expression(join(prefix, name), body.Attributes[name].Expr); err != nil {
			return err
		}
	}

	for _, block := range body.Blocks {
		segments := append([]string{block.Type}, block.Labels...)
		if err := w.body(join(prefix, strings.Join(segments, ".")), block.Body); err != nil {
			return err
		}
	}

	return nil
}

func (w *hclWalker) expression(prefix string, expr hclsyntax.Expression) error {
	switch typed := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		for i, item := range typed.Exprs {
			if err := w.expression(join(prefix, strconv.Itoa(i)), item); err != nil {
				return err
			}
		}
		return nil
	case *hclsyntax.ObjectConsExpr:
		for _, item := range typed.Items {
			key, err := w.evaluate(prefix, item.KeyExpr)
			if err != nil {
				return err
			}
			if key.IsNull() || key.Type() != cty.String {
				return fmt.Errorf("%w: attribute %q: object keys must be strings", entities.ErrParse, prefix)
			}
			if err = w.expression(join(prefix, key.AsString()), item.ValueExpr); err != nil {
				return err
			}
		}
		return nil
	}

	value, err := w.evaluate(prefix, expr)
	if err != nil {
		return err
	}
	if value.IsKnown() && !value.IsNull() && value.Type() == cty.Number && isNumberLiteral(expr) {
		rng := expr.Range()
		w.out[prefix] = string(w.src[rng.Start.Byte:rng.End.Byte])
		return nil
	}
	flattenCty(prefix, value, w.out)
	return nil
}

func (w *hclWalker) evaluate(prefix string, expr hclsyntax.Expression) (cty.Value, error) {
	value, diags := expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%w: attribute %q: %s", entities.ErrParse, prefix, diags.Error())
	}
	return value, nil
}

// isNumberLiteral reports whether expr is a number written out in the
// source, optionally negated.
func isNumberLiteral(expr hclsyntax.Expression) bool {
	if unary, ok := expr.(*hclsyntax.UnaryOpExpr); ok && unary.Op == hclsyntax.OpNegate {
		expr = unary.Val
	}
	_, ok := expr.(*hclsyntax.LiteralValueExpr)
	return ok
}

func flattenCty(prefix string, value cty.Value, out map[string]string) {
	if value.IsNull() || !value.IsKnown() {
		return
	}

	valueType := value.Type()
	switch {
	case valueType == cty.String:
		out[prefix] = value.AsString()
	case valueType == cty.Number:
		out[prefix] = value.AsBigFloat().Text('f', -1)
	case valueType == cty.Bool:
		out[prefix] = strconv.FormatBool(value.True())
	case valueType.IsObjectType() || valueType.IsMapType():
		for key, child := range value.AsValueMap() {
			flattenCty(join(prefix, key), child, out)
		}
	case valueType.IsListType() || valueType.IsTupleType() || valueType.IsSetType():
		for i, child := range value.AsValueSlice() {
			flattenCty(join(prefix, strconv.Itoa(i)), child, out)
		}
	}
}
