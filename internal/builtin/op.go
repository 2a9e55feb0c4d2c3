package builtin

import "fmt"

// Op identifies one host-evaluated body. There is one value per operator per
// builtin type; mixed int/double forms share the op of their left type.
type Op uint16

const (
	OpInvalid Op = iota

	// shared by every value type
	OpToString
	OpEquals

	OpBoolEq
	OpBoolNe
	OpBoolAnd
	OpBoolOr
	OpBoolNot

	OpIntAdd
	OpIntSub
	OpIntMul
	OpIntDiv
	OpIntMod
	OpIntLt
	OpIntLe
	OpIntGt
	OpIntGe
	OpIntEq
	OpIntNe
	OpIntAnd
	OpIntOr
	OpIntXor
	OpIntShl
	OpIntShr
	OpIntNeg
	OpIntPlus
	OpIntNot
	OpIntToDouble
	OpIntToChar

	OpDoubleAdd
	OpDoubleSub
	OpDoubleMul
	OpDoubleDiv
	OpDoubleLt
	OpDoubleLe
	OpDoubleGt
	OpDoubleGe
	OpDoubleEq
	OpDoubleNe
	OpDoubleNeg
	OpDoublePlus
	OpDoubleToInt
	OpDoubleFloor
	OpDoubleCeil
	OpDoubleRound

	OpStringConcat
	OpStringEq
	OpStringNe
	OpStringLength
	OpStringCharAt
	OpStringSubstring
	OpStringContains
	OpStringIndexOf
	OpStringToUpper
	OpStringToLower
	OpStringTrim

	OpCharEq
	OpCharNe
	OpCharLt
	OpCharLe
	OpCharGt
	OpCharGe
	OpCharAdd
	OpCharSub
	OpCharToInt
	OpCharIsDigit
	OpCharIsLetter
	OpCharIsWhitespace

	OpAnyEq
	OpAnyNe

	OpArrayLength

	OpConsolePrint
	OpConsolePrintln
	OpConsoleReadLine

	OpMathAbs
	OpMathSqrt
	OpMathPow
	OpMathMin
	OpMathMax
	OpMathRandom

	OpTimeNow
	OpTimeSleep

	opCount
)

var opNames = [...]string{
	OpInvalid:          "invalid",
	OpToString:         "toString",
	OpEquals:           "equals",
	OpBoolEq:           "bool.eq",
	OpBoolNe:           "bool.ne",
	OpBoolAnd:          "bool.and",
	OpBoolOr:           "bool.or",
	OpBoolNot:          "bool.not",
	OpIntAdd:           "int.add",
	OpIntSub:           "int.sub",
	OpIntMul:           "int.mul",
	OpIntDiv:           "int.div",
	OpIntMod:           "int.mod",
	OpIntLt:            "int.lt",
	OpIntLe:            "int.le",
	OpIntGt:            "int.gt",
	OpIntGe:            "int.ge",
	OpIntEq:            "int.eq",
	OpIntNe:            "int.ne",
	OpIntAnd:           "int.and",
	OpIntOr:            "int.or",
	OpIntXor:           "int.xor",
	OpIntShl:           "int.shl",
	OpIntShr:           "int.shr",
	OpIntNeg:           "int.neg",
	OpIntPlus:          "int.plus",
	OpIntNot:           "int.not",
	OpIntToDouble:      "int.toDouble",
	OpIntToChar:        "int.toChar",
	OpDoubleAdd:        "double.add",
	OpDoubleSub:        "double.sub",
	OpDoubleMul:        "double.mul",
	OpDoubleDiv:        "double.div",
	OpDoubleLt:         "double.lt",
	OpDoubleLe:         "double.le",
	OpDoubleGt:         "double.gt",
	OpDoubleGe:         "double.ge",
	OpDoubleEq:         "double.eq",
	OpDoubleNe:         "double.ne",
	OpDoubleNeg:        "double.neg",
	OpDoublePlus:       "double.plus",
	OpDoubleToInt:      "double.toInt",
	OpDoubleFloor:      "double.floor",
	OpDoubleCeil:       "double.ceil",
	OpDoubleRound:      "double.round",
	OpStringConcat:     "string.concat",
	OpStringEq:         "string.eq",
	OpStringNe:         "string.ne",
	OpStringLength:     "string.length",
	OpStringCharAt:     "string.charAt",
	OpStringSubstring:  "string.substring",
	OpStringContains:   "string.contains",
	OpStringIndexOf:    "string.indexOf",
	OpStringToUpper:    "string.toUpper",
	OpStringToLower:    "string.toLower",
	OpStringTrim:       "string.trim",
	OpCharEq:           "char.eq",
	OpCharNe:           "char.ne",
	OpCharLt:           "char.lt",
	OpCharLe:           "char.le",
	OpCharGt:           "char.gt",
	OpCharGe:           "char.ge",
	OpCharAdd:          "char.add",
	OpCharSub:          "char.sub",
	OpCharToInt:        "char.toInt",
	OpCharIsDigit:      "char.isDigit",
	OpCharIsLetter:     "char.isLetter",
	OpCharIsWhitespace: "char.isWhitespace",
	OpAnyEq:            "any.eq",
	OpAnyNe:            "any.ne",
	OpArrayLength:      "array.length",
	OpConsolePrint:     "Console.print",
	OpConsolePrintln:   "Console.println",
	OpConsoleReadLine:  "Console.readLine",
	OpMathAbs:          "Math.abs",
	OpMathSqrt:         "Math.sqrt",
	OpMathPow:          "Math.pow",
	OpMathMin:          "Math.min",
	OpMathMax:          "Math.max",
	OpMathRandom:       "Math.random",
	OpTimeNow:          "Time.now",
	OpTimeSleep:        "Time.sleep",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint16(o))
}

// OpName satisfies bound.Operation.
func (o Op) OpName() string { return o.String() }
