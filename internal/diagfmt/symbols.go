package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"zephyr/internal/builtin"
	"zephyr/internal/scope"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

// SymbolsOutput is a dump of the user-declared part of a program scope.
type SymbolsOutput struct {
	File    string       `json:"file" yaml:"file"`
	Imports []string     `json:"imports,omitempty" yaml:"imports,omitempty"`
	Exports []string     `json:"exports,omitempty" yaml:"exports,omitempty"`
	Types   []TypeOutput `json:"types" yaml:"types"`
}

type TypeOutput struct {
	Name         string           `json:"name" yaml:"name"`
	At           string           `json:"at,omitempty" yaml:"at,omitempty"`
	Native       bool             `json:"native,omitempty" yaml:"native,omitempty"`
	State        string           `json:"state" yaml:"state"`
	Generics     []string         `json:"generics,omitempty" yaml:"generics,omitempty"`
	Fields       []FieldOutput    `json:"fields,omitempty" yaml:"fields,omitempty"`
	Functions    []FunctionOutput `json:"functions,omitempty" yaml:"functions,omitempty"`
	Constructors []FunctionOutput `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	Operators    []FunctionOutput `json:"operators,omitempty" yaml:"operators,omitempty"`
}

type FieldOutput struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Visibility string `json:"visibility" yaml:"visibility"`
	Shared     bool   `json:"shared,omitempty" yaml:"shared,omitempty"`
	ReadOnly   bool   `json:"read_only,omitempty" yaml:"read_only,omitempty"`
}

type FunctionOutput struct {
	Name       string   `json:"name" yaml:"name"`
	Params     []string `json:"params,omitempty" yaml:"params,omitempty"`
	Returns    string   `json:"returns" yaml:"returns"`
	Visibility string   `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Shared     bool     `json:"shared,omitempty" yaml:"shared,omitempty"`
	Generated  bool     `json:"generated,omitempty" yaml:"generated,omitempty"`
}

// BuildSymbolsOutput collects every non-builtin type of prog in declaration order.
func BuildSymbolsOutput(prog *scope.Program, fs *source.FileSet, path string, mode PathMode) SymbolsOutput {
	out := SymbolsOutput{File: path, Types: []TypeOutput{}}
	if prog == nil {
		return out
	}
	out.Imports = append(out.Imports, prog.Namespaces()...)
	for _, e := range prog.Exports() {
		out.Exports = append(out.Exports, e.Name())
	}
	for _, t := range prog.Types() {
		if builtin.IsReservedName(t.Name()) {
			continue
		}
		out.Types = append(out.Types, typeOutput(t, fs, mode))
	}
	return out
}

func typeOutput(t *symbols.TypeSymbol, fs *source.FileSet, mode PathMode) TypeOutput {
	to := TypeOutput{
		Name:     t.Name(),
		Native:   t.Host,
		State:    t.State.String(),
		Generics: t.Generics(),
	}
	if f := fs.Get(t.Decl().File); f != nil && !t.Host {
		pos, _ := fs.Resolve(t.Decl())
		to.At = fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), pos.Line, pos.Col)
	}
	for _, f := range t.Fields() {
		to.Fields = append(to.Fields, FieldOutput{
			Name:       f.Name(),
			Type:       f.Type.Name(),
			Visibility: f.Visibility.String(),
			Shared:     f.Shared,
			ReadOnly:   f.ReadOnly,
		})
	}
	for _, fn := range t.Functions() {
		to.Functions = append(to.Functions, FunctionOutput{
			Name:       fn.Name(),
			Params:     paramStrings(fn.Params),
			Returns:    fn.Return.Name(),
			Visibility: fn.Visibility.String(),
			Shared:     fn.Shared,
			Generated:  fn.Generated,
		})
	}
	for _, c := range t.Constructors() {
		to.Constructors = append(to.Constructors, FunctionOutput{
			Name:       c.Name(),
			Params:     paramStrings(c.Params),
			Returns:    t.Name(),
			Visibility: c.Visibility.String(),
			Generated:  c.Generated,
		})
	}
	for _, u := range t.UnaryOperators() {
		to.Operators = append(to.Operators, FunctionOutput{Name: u.Name(), Returns: u.Return.Name()})
	}
	for _, b := range t.BinaryOperators() {
		to.Operators = append(to.Operators, FunctionOutput{
			Name:    b.Name(),
			Params:  paramStrings(b.Parameters()),
			Returns: b.Return.Name(),
		})
	}
	return to
}

func paramStrings(params []*symbols.ParameterSymbol) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name() + ": " + p.Type.Name()
	}
	return out
}

func FormatSymbolsJSON(w io.Writer, out SymbolsOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func FormatSymbolsYAML(w io.Writer, out SymbolsOutput) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}
