package builtin

import (
	"math"
	"slices"
	"sync"
)

// natives is the process-wide catalog of host types a program may request with
// `native type Name;`. Each entry is built at most once.
var natives = map[string]*nativeEntry{
	"Console": {newType: consoleType},
	"Math":    {newType: mathType},
	"Time":    {newType: timeType},
}

type nativeEntry struct {
	once    sync.Once
	newType func() *HostType
	host    *HostType
}

// Native returns the native type called name, building it on first request.
func Native(name string) (*HostType, bool) {
	entry, ok := natives[name]
	if !ok {
		return nil, false
	}
	entry.once.Do(func() {
		Types() // native members refer to builtin types
		entry.host = entry.newType().build()
	})
	return entry.host, true
}

// NativeNames lists the catalog in sorted order.
func NativeNames() []string {
	names := make([]string, 0, len(natives))
	for name := range natives {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func consoleType() *HostType {
	return &HostType{
		sym: hostSymbol("Console"),
		funcs: []funcSpec{
			{name: "print", params: []paramSpec{{"value", Any}}, ret: Void, shared: true, op: OpConsolePrint},
			{name: "println", params: []paramSpec{{"value", Any}}, ret: Void, shared: true, op: OpConsolePrintln},
			{name: "readLine", ret: String, shared: true, op: OpConsoleReadLine},
		},
	}
}

func mathType() *HostType {
	return &HostType{
		sym: hostSymbol("Math"),
		fields: []fieldSpec{
			{name: "pi", typ: Double, shared: true, readOnly: true, value: math.Pi},
			{name: "e", typ: Double, shared: true, readOnly: true, value: math.E},
		},
		funcs: []funcSpec{
			{name: "abs", params: []paramSpec{{"x", Double}}, ret: Double, shared: true, op: OpMathAbs},
			{name: "sqrt", params: []paramSpec{{"x", Double}}, ret: Double, shared: true, op: OpMathSqrt},
			{name: "pow", params: []paramSpec{{"x", Double}, {"y", Double}}, ret: Double, shared: true, op: OpMathPow},
			{name: "min", params: []paramSpec{{"a", Int}, {"b", Int}}, ret: Int, shared: true, op: OpMathMin},
			{name: "max", params: []paramSpec{{"a", Int}, {"b", Int}}, ret: Int, shared: true, op: OpMathMax},
			{name: "random", ret: Double, shared: true, op: OpMathRandom},
		},
	}
}

func timeType() *HostType {
	return &HostType{
		sym: hostSymbol("Time"),
		funcs: []funcSpec{
			{name: "now", ret: Int, shared: true, op: OpTimeNow},
			{name: "sleep", params: []paramSpec{{"millis", Int}}, ret: Void, shared: true, op: OpTimeSleep},
		},
	}
}
