package builtin

import (
	"fmt"
	"sync"

	"zephyr/internal/scope"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

// Builtin type symbols. Their members are filled in once, on first use of the registry.
var (
	Bool   = hostSymbol("bool")
	Int    = hostSymbol("int")
	Double = hostSymbol("double")
	String = hostSymbol("string")
	Char   = hostSymbol("char")
	Any    = hostSymbol("any")
	Void   = hostSymbol("void")
	// Array carries the members shared by every array type; member lookup on `T[]`
	// is redirected here.
	Array = hostSymbol("array")

	Error   = symbols.Error
	Unknown = symbols.Unknown
)

func hostSymbol(name string) *symbols.TypeSymbol {
	t := symbols.NewType(name, source.Span{})
	t.Host = true
	return t
}

var (
	builtinsOnce sync.Once
	builtins     []*HostType
)

// Types returns the builtin host types in declaration order.
func Types() []*HostType {
	builtinsOnce.Do(func() {
		builtins = []*HostType{
			boolType().build(),
			intType().build(),
			doubleType().build(),
			stringType().build(),
			charType().build(),
			anyType().build(),
			voidType().build(),
			arrayType().build(),
		}
	})
	return builtins
}

// Install declares and defines every builtin type in p. It must run before any
// user type is declared.
func Install(p *scope.Program) {
	for _, h := range Types() {
		if err := p.DeclareType(h.sym); err != nil {
			panic(fmt.Errorf("builtin: install: %w", err))
		}
		p.DefineType(h.sym, h.scope)
	}
}

// Lookup returns the builtin named name.
func Lookup(name string) (*HostType, bool) {
	for _, h := range Types() {
		if h.sym.Name() == name {
			return h, true
		}
	}
	return nil, false
}

// IsReservedName reports names user types may never take.
func IsReservedName(name string) bool {
	if _, ok := Lookup(name); ok {
		return true
	}
	return name == Error.Name() || name == Unknown.Name()
}

// AssignableTo reports whether a value of type from may flow into a slot of type to
// without a diagnostic: equal types, or a non-void value into an any target.
func AssignableTo(from, to *symbols.TypeSymbol) bool {
	return from.Equal(to) || (to.Equal(Any) && !from.Equal(Void))
}

func commonMembers() []funcSpec {
	return []funcSpec{
		{name: "toString", ret: String, op: OpToString},
		{name: "equals", params: []paramSpec{{"other", Any}}, ret: Bool, op: OpEquals},
	}
}

func comparisons(right *symbols.TypeSymbol) []binarySpec {
	out := make([]binarySpec, 0, 6)
	for _, op := range []string{"<", "<=", ">", ">=", "==", "!="} {
		out = append(out, binarySpec{op: op, right: right, ret: Bool})
	}
	return out
}

func arithmetic(right, ret *symbols.TypeSymbol, ops ...string) []binarySpec {
	out := make([]binarySpec, 0, len(ops))
	for _, op := range ops {
		out = append(out, binarySpec{op: op, right: right, ret: ret})
	}
	return out
}

func boolType() *HostType {
	return &HostType{
		sym:       Bool,
		funcs:     commonMembers(),
		unary:     []unarySpec{{"!", Bool}},
		binary:    arithmetic(Bool, Bool, "==", "!=", "&&", "||"),
		unaryOps:  map[string]Op{"!": OpBoolNot},
		binaryOps: map[string]Op{"==": OpBoolEq, "!=": OpBoolNe, "&&": OpBoolAnd, "||": OpBoolOr},
	}
}

func intType() *HostType {
	binary := arithmetic(Int, Int, "+", "-", "*", "/", "%")
	binary = append(binary, arithmetic(Double, Double, "+", "-", "*", "/")...)
	binary = append(binary, comparisons(Int)...)
	binary = append(binary, comparisons(Double)...)
	binary = append(binary, arithmetic(Int, Int, "&", "|", "^", "<<", ">>")...)
	return &HostType{
		sym: Int,
		funcs: append(commonMembers(),
			funcSpec{name: "toDouble", ret: Double, op: OpIntToDouble},
			funcSpec{name: "toChar", ret: Char, op: OpIntToChar},
		),
		unary:    []unarySpec{{"-", Int}, {"+", Int}, {"~", Int}},
		binary:   binary,
		unaryOps: map[string]Op{"-": OpIntNeg, "+": OpIntPlus, "~": OpIntNot},
		binaryOps: map[string]Op{
			"+": OpIntAdd, "-": OpIntSub, "*": OpIntMul, "/": OpIntDiv, "%": OpIntMod,
			"<": OpIntLt, "<=": OpIntLe, ">": OpIntGt, ">=": OpIntGe, "==": OpIntEq, "!=": OpIntNe,
			"&": OpIntAnd, "|": OpIntOr, "^": OpIntXor, "<<": OpIntShl, ">>": OpIntShr,
		},
	}
}

func doubleType() *HostType {
	binary := arithmetic(Double, Double, "+", "-", "*", "/")
	binary = append(binary, arithmetic(Int, Double, "+", "-", "*", "/")...)
	binary = append(binary, comparisons(Double)...)
	binary = append(binary, comparisons(Int)...)
	return &HostType{
		sym: Double,
		funcs: append(commonMembers(),
			funcSpec{name: "toInt", ret: Int, op: OpDoubleToInt},
			funcSpec{name: "floor", ret: Double, op: OpDoubleFloor},
			funcSpec{name: "ceil", ret: Double, op: OpDoubleCeil},
			funcSpec{name: "round", ret: Double, op: OpDoubleRound},
		),
		unary:    []unarySpec{{"-", Double}, {"+", Double}},
		binary:   binary,
		unaryOps: map[string]Op{"-": OpDoubleNeg, "+": OpDoublePlus},
		binaryOps: map[string]Op{
			"+": OpDoubleAdd, "-": OpDoubleSub, "*": OpDoubleMul, "/": OpDoubleDiv,
			"<": OpDoubleLt, "<=": OpDoubleLe, ">": OpDoubleGt, ">=": OpDoubleGe, "==": OpDoubleEq, "!=": OpDoubleNe,
		},
	}
}

func stringType() *HostType {
	binary := []binarySpec{{"+", String, String}}
	binary = append(binary, arithmetic(String, Bool, "==", "!=")...)
	return &HostType{
		sym: String,
		funcs: append(commonMembers(),
			funcSpec{name: "length", ret: Int, op: OpStringLength},
			funcSpec{name: "charAt", params: []paramSpec{{"index", Int}}, ret: Char, op: OpStringCharAt},
			funcSpec{name: "substring", params: []paramSpec{{"start", Int}, {"end", Int}}, ret: String, op: OpStringSubstring},
			funcSpec{name: "contains", params: []paramSpec{{"part", String}}, ret: Bool, op: OpStringContains},
			funcSpec{name: "indexOf", params: []paramSpec{{"part", String}}, ret: Int, op: OpStringIndexOf},
			funcSpec{name: "toUpper", ret: String, op: OpStringToUpper},
			funcSpec{name: "toLower", ret: String, op: OpStringToLower},
			funcSpec{name: "trim", ret: String, op: OpStringTrim},
		),
		binary:    binary,
		binaryOps: map[string]Op{"+": OpStringConcat, "==": OpStringEq, "!=": OpStringNe},
	}
}

func charType() *HostType {
	binary := comparisons(Char)
	binary = append(binary, arithmetic(Int, Char, "+", "-")...)
	return &HostType{
		sym: Char,
		funcs: append(commonMembers(),
			funcSpec{name: "toInt", ret: Int, op: OpCharToInt},
			funcSpec{name: "isDigit", ret: Bool, op: OpCharIsDigit},
			funcSpec{name: "isLetter", ret: Bool, op: OpCharIsLetter},
			funcSpec{name: "isWhitespace", ret: Bool, op: OpCharIsWhitespace},
		),
		binary: binary,
		binaryOps: map[string]Op{
			"==": OpCharEq, "!=": OpCharNe, "<": OpCharLt, "<=": OpCharLe, ">": OpCharGt, ">=": OpCharGe,
			"+": OpCharAdd, "-": OpCharSub,
		},
	}
}

func anyType() *HostType {
	return &HostType{
		sym:       Any,
		funcs:     commonMembers(),
		binary:    arithmetic(Any, Bool, "==", "!="),
		binaryOps: map[string]Op{"==": OpAnyEq, "!=": OpAnyNe},
	}
}

func voidType() *HostType {
	return &HostType{sym: Void}
}

func arrayType() *HostType {
	return &HostType{
		sym:    Array,
		fields: []fieldSpec{{name: "length", typ: Int, readOnly: true, op: OpArrayLength}},
		funcs:  commonMembers(),
	}
}
