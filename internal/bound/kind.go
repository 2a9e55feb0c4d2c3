package bound

// Kind enumerates bound node kinds.
type Kind uint8

const (
	// statements
	KindBlock Kind = iota + 1
	KindVariableDeclaration
	KindExpressionStatement
	KindIf
	KindWhile
	KindDoWhile
	KindFor
	KindGoto
	KindConditionalGoto
	KindLabel
	KindReturn

	// expressions
	KindError
	KindLiteral
	KindUnary
	KindBinary
	KindConditional
	KindInstanceCreation
	KindVariable
	KindAssignment
	KindFieldAccess
	KindFunctionCall
	KindThis
	KindTypeExpression
	KindInternalCall
	KindArrayLiteral
	KindArrayAccess
	KindArrayCreation
	KindConversion
	KindTypeCheck
	KindTypeEquals
)

var kindNames = [...]string{
	KindBlock:               "Block",
	KindVariableDeclaration: "VariableDeclaration",
	KindExpressionStatement: "ExpressionStatement",
	KindIf:                  "If",
	KindWhile:               "While",
	KindDoWhile:             "DoWhile",
	KindFor:                 "For",
	KindGoto:                "Goto",
	KindConditionalGoto:     "ConditionalGoto",
	KindLabel:               "Label",
	KindReturn:              "Return",
	KindError:               "Error",
	KindLiteral:             "Literal",
	KindUnary:               "Unary",
	KindBinary:              "Binary",
	KindConditional:         "Conditional",
	KindInstanceCreation:    "InstanceCreation",
	KindVariable:            "Variable",
	KindAssignment:          "Assignment",
	KindFieldAccess:         "FieldAccess",
	KindFunctionCall:        "FunctionCall",
	KindThis:                "This",
	KindTypeExpression:      "TypeExpression",
	KindInternalCall:        "InternalCall",
	KindArrayLiteral:        "ArrayLiteral",
	KindArrayAccess:         "ArrayAccess",
	KindArrayCreation:       "ArrayCreation",
	KindConversion:          "Conversion",
	KindTypeCheck:           "TypeCheck",
	KindTypeEquals:          "TypeEquals",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
