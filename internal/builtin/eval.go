package builtin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// ErrDivisionByZero is returned for integer division or modulo by zero.
var ErrDivisionByZero = errors.New("division by zero")

// ErrIndexOutOfRange is returned by string indexing ops.
var ErrIndexOutOfRange = errors.New("index out of range")

// UnhandledOpError is the panic value when Evaluate meets an op it has no case for.
type UnhandledOpError struct {
	Op Op
}

func (e *UnhandledOpError) Error() string {
	return fmt.Sprintf("builtin: no host implementation for %s", e.Op)
}

// Host supplies the side effects native ops need. Values are bool, int64,
// float64, string, rune and []any for arrays.
type Host struct {
	Out   io.Writer
	In    *bufio.Reader
	Now   func() time.Time
	Sleep func(time.Duration)
	Rand  func() float64
}

// NewHost returns a host wired to out and in with real clocks.
func NewHost(out io.Writer, in io.Reader) *Host {
	return &Host{
		Out:   out,
		In:    bufio.NewReader(in),
		Now:   time.Now,
		Sleep: time.Sleep,
		Rand:  rand.Float64,
	}
}

var (
	defaultHostOnce sync.Once
	defaultHost     *Host
)

// Evaluate runs op against the process stdio host.
func Evaluate(op Op, this any, args ...any) (any, error) {
	defaultHostOnce.Do(func() { defaultHost = NewHost(os.Stdout, os.Stdin) })
	return defaultHost.Evaluate(op, this, args...)
}

// Evaluate runs op. this is nil for shared functions. Every Op has a case; an
// unknown one panics with *UnhandledOpError.
func (h *Host) Evaluate(op Op, this any, args ...any) (any, error) {
	switch op {
	case OpToString:
		return FormatValue(this), nil
	case OpEquals:
		return ValuesEqual(this, args[0]), nil

	case OpBoolEq:
		return this.(bool) == args[0].(bool), nil
	case OpBoolNe:
		return this.(bool) != args[0].(bool), nil
	case OpBoolAnd:
		return this.(bool) && args[0].(bool), nil
	case OpBoolOr:
		return this.(bool) || args[0].(bool), nil
	case OpBoolNot:
		return !this.(bool), nil

	case OpIntAdd, OpIntSub, OpIntMul, OpIntDiv, OpIntMod:
		return intArith(op, this.(int64), args[0])
	case OpIntLt, OpIntLe, OpIntGt, OpIntGe, OpIntEq, OpIntNe:
		return compareNumbers(op, float64(this.(int64)), args[0]), nil
	case OpIntAnd:
		return this.(int64) & args[0].(int64), nil
	case OpIntOr:
		return this.(int64) | args[0].(int64), nil
	case OpIntXor:
		return this.(int64) ^ args[0].(int64), nil
	case OpIntShl:
		return this.(int64) << uint64(args[0].(int64)&63), nil
	case OpIntShr:
		return this.(int64) >> uint64(args[0].(int64)&63), nil
	case OpIntNeg:
		return -this.(int64), nil
	case OpIntPlus:
		return this.(int64), nil
	case OpIntNot:
		return ^this.(int64), nil
	case OpIntToDouble:
		return float64(this.(int64)), nil
	case OpIntToChar:
		return rune(this.(int64)), nil

	case OpDoubleAdd, OpDoubleSub, OpDoubleMul, OpDoubleDiv:
		return doubleArith(op, this.(float64), toFloat(args[0])), nil
	case OpDoubleLt, OpDoubleLe, OpDoubleGt, OpDoubleGe, OpDoubleEq, OpDoubleNe:
		return compareNumbers(op, this.(float64), args[0]), nil
	case OpDoubleNeg:
		return -this.(float64), nil
	case OpDoublePlus:
		return this.(float64), nil
	case OpDoubleToInt:
		return int64(this.(float64)), nil
	case OpDoubleFloor:
		return math.Floor(this.(float64)), nil
	case OpDoubleCeil:
		return math.Ceil(this.(float64)), nil
	case OpDoubleRound:
		return math.Round(this.(float64)), nil

	case OpStringConcat:
		if c, ok := args[0].(rune); ok {
			return this.(string) + string(c), nil
		}
		return this.(string) + args[0].(string), nil
	case OpStringEq:
		return this.(string) == args[0].(string), nil
	case OpStringNe:
		return this.(string) != args[0].(string), nil
	case OpStringLength:
		return int64(len([]rune(this.(string)))), nil
	case OpStringCharAt:
		runes := []rune(this.(string))
		i := args[0].(int64)
		if i < 0 || i >= int64(len(runes)) {
			return nil, fmt.Errorf("charAt(%d) on length %d: %w", i, len(runes), ErrIndexOutOfRange)
		}
		return runes[i], nil
	case OpStringSubstring:
		runes := []rune(this.(string))
		start, end := args[0].(int64), args[1].(int64)
		if start < 0 || end < start || end > int64(len(runes)) {
			return nil, fmt.Errorf("substring(%d, %d) on length %d: %w", start, end, len(runes), ErrIndexOutOfRange)
		}
		return string(runes[start:end]), nil
	case OpStringContains:
		return strings.Contains(this.(string), args[0].(string)), nil
	case OpStringIndexOf:
		s, part := this.(string), args[0].(string)
		idx := strings.Index(s, part)
		if idx < 0 {
			return int64(-1), nil
		}
		return int64(len([]rune(s[:idx]))), nil
	case OpStringToUpper:
		return strings.ToUpper(this.(string)), nil
	case OpStringToLower:
		return strings.ToLower(this.(string)), nil
	case OpStringTrim:
		return strings.TrimSpace(this.(string)), nil

	case OpCharEq:
		return this.(rune) == args[0].(rune), nil
	case OpCharNe:
		return this.(rune) != args[0].(rune), nil
	case OpCharLt:
		return this.(rune) < args[0].(rune), nil
	case OpCharLe:
		return this.(rune) <= args[0].(rune), nil
	case OpCharGt:
		return this.(rune) > args[0].(rune), nil
	case OpCharGe:
		return this.(rune) >= args[0].(rune), nil
	case OpCharAdd:
		return this.(rune) + rune(args[0].(int64)), nil
	case OpCharSub:
		return this.(rune) - rune(args[0].(int64)), nil
	case OpCharToInt:
		return int64(this.(rune)), nil
	case OpCharIsDigit:
		return unicode.IsDigit(this.(rune)), nil
	case OpCharIsLetter:
		return unicode.IsLetter(this.(rune)), nil
	case OpCharIsWhitespace:
		return unicode.IsSpace(this.(rune)), nil

	case OpAnyEq:
		return ValuesEqual(this, args[0]), nil
	case OpAnyNe:
		return !ValuesEqual(this, args[0]), nil

	case OpArrayLength:
		return int64(len(this.([]any))), nil

	case OpConsolePrint:
		_, err := io.WriteString(h.Out, FormatValue(args[0]))
		return nil, err
	case OpConsolePrintln:
		_, err := io.WriteString(h.Out, FormatValue(args[0])+"\n")
		return nil, err
	case OpConsoleReadLine:
		line, err := h.In.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("readLine: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil

	case OpMathAbs:
		return math.Abs(args[0].(float64)), nil
	case OpMathSqrt:
		return math.Sqrt(args[0].(float64)), nil
	case OpMathPow:
		return math.Pow(args[0].(float64), args[1].(float64)), nil
	case OpMathMin:
		return min(args[0].(int64), args[1].(int64)), nil
	case OpMathMax:
		return max(args[0].(int64), args[1].(int64)), nil
	case OpMathRandom:
		return h.Rand(), nil

	case OpTimeNow:
		return h.Now().UnixMilli(), nil
	case OpTimeSleep:
		h.Sleep(time.Duration(args[0].(int64)) * time.Millisecond)
		return nil, nil

	default:
		panic(&UnhandledOpError{Op: op})
	}
}

func intArith(op Op, left int64, right any) (any, error) {
	if r, ok := right.(float64); ok {
		return doubleArith(op, float64(left), r), nil
	}
	r := right.(int64)
	switch op {
	case OpIntAdd:
		return left + r, nil
	case OpIntSub:
		return left - r, nil
	case OpIntMul:
		return left * r, nil
	case OpIntDiv:
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return left / r, nil
	default:
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return left % r, nil
	}
}

func doubleArith(op Op, left, right float64) float64 {
	switch op {
	case OpIntAdd, OpDoubleAdd:
		return left + right
	case OpIntSub, OpDoubleSub:
		return left - right
	case OpIntMul, OpDoubleMul:
		return left * right
	default:
		return left / right
	}
}

func compareNumbers(op Op, left float64, right any) bool {
	r := toFloat(right)
	switch op {
	case OpIntLt, OpDoubleLt:
		return left < r
	case OpIntLe, OpDoubleLe:
		return left <= r
	case OpIntGt, OpDoubleGt:
		return left > r
	case OpIntGe, OpDoubleGe:
		return left >= r
	case OpIntEq, OpDoubleEq:
		return left == r
	default:
		return left != r
	}
}

func toFloat(v any) float64 {
	if i, ok := v.(int64); ok {
		return float64(i)
	}
	return v.(float64)
}

// FormatValue renders a host value the way toString does.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case string:
		return x
	case rune:
		return string(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// ValuesEqual compares host values; arrays compare element-wise.
func ValuesEqual(a, b any) bool {
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok || bok {
		if !aok || !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !ValuesEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}
