package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadEscape                Code = 1006
	LexBadCharLiteral           Code = 1007

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynExpectColon        Code = 2010
	SynModifierNotAllowed Code = 2011
	SynDuplicateModifier  Code = 2012
	SynInvalidOperator    Code = 2013
	SynExpectString       Code = 2014

	// Declarations
	SemaInfo                             Code = 3000
	SemaTypeAlreadyDeclared              Code = 3001
	SemaReservedTypeName                 Code = 3002
	SemaGenericAlreadyDeclared           Code = 3003
	SemaFieldAlreadyDeclared             Code = 3004
	SemaReservedFieldName                Code = 3005
	SemaFunctionDeclaredButFieldExpected Code = 3006
	SemaFieldDeclaredButFunctionExpected Code = 3007
	SemaFunctionAlreadyDeclared          Code = 3008
	SemaParameterAlreadyDeclared         Code = 3009
	SemaConstructorAlreadyDeclared       Code = 3010
	SemaBinaryOperatorAlreadyDeclared    Code = 3011
	SemaUnaryOperatorAlreadyDeclared     Code = 3012
	SemaOperatorCannotReturnVoid         Code = 3013
	SemaInvalidOperatorSignature         Code = 3014
	SemaInvalidToStringFunction          Code = 3015
	SemaInvalidEqualsFunction            Code = 3016
	SemaExportAlreadyDeclared            Code = 3017
	SemaUnknownNativeType                Code = 3018
	SemaVariableAlreadyDeclared          Code = 3019

	// Name resolution
	SemaUndefinedType                Code = 3100
	SemaUndefinedName                Code = 3101
	SemaUndefinedMember              Code = 3102
	SemaUndefinedBinaryOperator      Code = 3103
	SemaUndefinedUnaryOperator       Code = 3104
	SemaFunctionNotDeclared          Code = 3105
	SemaConstructorNotDefined        Code = 3106
	SemaCannotAccessPrivateMember    Code = 3107
	SemaThisOutsideCallable          Code = 3108
	SemaFunctionMustBeCalled         Code = 3109
	SemaStaticCallToInstanceFunction Code = 3110
	SemaInstanceCallToSharedFunction Code = 3111
	SemaCannotCallThis               Code = 3112
	SemaNotCallable                  Code = 3113
	SemaInstanceFieldOnType          Code = 3114
	SemaSharedFieldOnInstance        Code = 3115

	// Type checking
	SemaCannotConvert                        Code = 3200
	SemaMismatchingTypes                     Code = 3201
	SemaInvalidConditionType                 Code = 3202
	SemaFunctionParameterCountMismatch       Code = 3203
	SemaGenericParameterCountMismatch        Code = 3204
	SemaInvalidNumberLiteral                 Code = 3205
	SemaCannotIndex                          Code = 3206
	SemaArrayIndexMustBeInt                  Code = 3207
	SemaArrayCreationSizeMustBeInt           Code = 3208
	SemaArrayCreationInitializerTypeMismatch Code = 3209
	SemaArrayCreationMustHaveSize            Code = 3210
	SemaCannotAssignReadOnly                 Code = 3211
	SemaInvalidAssignmentTarget              Code = 3212
	SemaCannotCheckType                      Code = 3213
	SemaCannotCheckTypeOfVoid                Code = 3214
	SemaRedundantTypeCheck                   Code = 3215
	SemaConstVariableMustBeInitialized       Code = 3216
	SemaConstFieldMustHaveInitializer        Code = 3217

	// Control flow
	SemaInvalidBreakOrContinue       Code = 3300
	SemaConstructorCannotReturnValue Code = 3301
	SemaOperatorMustReturnValue      Code = 3302
	SemaMissingReturnValue           Code = 3303
	SemaVoidFunctionReturnsValue     Code = 3304

	// Imports
	SemaImportError     Code = 3400
	SemaDuplicateImport Code = 3401

	IOLoadFileError Code = 4001

	FutNotSupported Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                              "Unknown error",
		LexInfo:                                  "Lexical information",
		LexUnknownChar:                           "Unknown character",
		LexUnterminatedString:                    "Unterminated string literal",
		LexUnterminatedBlockComment:              "Unterminated block comment",
		LexBadNumber:                             "Malformed number literal",
		LexUnterminatedChar:                      "Unterminated character literal",
		LexBadEscape:                             "Unknown escape sequence",
		LexBadCharLiteral:                        "Character literal must contain exactly one character",
		SynInfo:                                  "Syntax information",
		SynUnexpectedToken:                       "Unexpected token",
		SynExpectSemicolon:                       "Expected ';'",
		SynExpectIdentifier:                      "Expected identifier",
		SynExpectType:                            "Expected type",
		SynExpectExpression:                      "Expected expression",
		SynUnclosedParen:                         "Unclosed '('",
		SynUnclosedBrace:                         "Unclosed '{'",
		SynUnclosedBracket:                       "Unclosed '['",
		SynUnexpectedTopLevel:                    "Unexpected top-level statement",
		SynExpectColon:                           "Expected ':'",
		SynModifierNotAllowed:                    "Modifier not allowed here",
		SynDuplicateModifier:                     "Duplicate modifier",
		SynInvalidOperator:                       "Operator cannot be overloaded",
		SynExpectString:                          "Expected string literal",
		SemaInfo:                                 "Semantic information",
		SemaTypeAlreadyDeclared:                  "Type already declared",
		SemaReservedTypeName:                     "Reserved type name",
		SemaGenericAlreadyDeclared:               "Generic parameter already declared",
		SemaFieldAlreadyDeclared:                 "Field already declared",
		SemaReservedFieldName:                    "Reserved field name",
		SemaFunctionDeclaredButFieldExpected:     "A function with this name is already declared",
		SemaFieldDeclaredButFunctionExpected:     "A field with this name is already declared",
		SemaFunctionAlreadyDeclared:              "Function already declared",
		SemaParameterAlreadyDeclared:             "Parameter already declared",
		SemaConstructorAlreadyDeclared:           "Constructor with this parameter count already declared",
		SemaBinaryOperatorAlreadyDeclared:        "Binary operator already declared",
		SemaUnaryOperatorAlreadyDeclared:         "Unary operator already declared",
		SemaOperatorCannotReturnVoid:             "Operator cannot return void",
		SemaInvalidOperatorSignature:             "Invalid operator signature",
		SemaInvalidToStringFunction:              "Invalid toString function",
		SemaInvalidEqualsFunction:                "Invalid equals function",
		SemaExportAlreadyDeclared:                "Export already declared",
		SemaUnknownNativeType:                    "Unknown native type",
		SemaVariableAlreadyDeclared:              "Variable already declared",
		SemaUndefinedType:                        "Undefined type",
		SemaUndefinedName:                        "Undefined name",
		SemaUndefinedMember:                      "Undefined member",
		SemaUndefinedBinaryOperator:              "Undefined binary operator",
		SemaUndefinedUnaryOperator:               "Undefined unary operator",
		SemaFunctionNotDeclared:                  "Function not declared",
		SemaConstructorNotDefined:                "No constructor with this parameter count",
		SemaCannotAccessPrivateMember:            "Cannot access private member",
		SemaThisOutsideCallable:                  "'this' used outside of a function body",
		SemaFunctionMustBeCalled:                 "Function must be called",
		SemaStaticCallToInstanceFunction:         "Instance function called on a type",
		SemaInstanceCallToSharedFunction:         "Shared function called on an instance",
		SemaCannotCallThis:                       "Cannot call 'this'",
		SemaNotCallable:                          "Expression is not callable",
		SemaInstanceFieldOnType:                  "Instance field accessed on a type",
		SemaSharedFieldOnInstance:                "Shared field accessed on an instance",
		SemaCannotConvert:                        "Cannot convert",
		SemaMismatchingTypes:                     "Mismatching types",
		SemaInvalidConditionType:                 "Condition must be bool",
		SemaFunctionParameterCountMismatch:       "Argument count mismatch",
		SemaGenericParameterCountMismatch:        "Generic argument count mismatch",
		SemaInvalidNumberLiteral:                 "Invalid number literal",
		SemaCannotIndex:                          "Cannot index expression",
		SemaArrayIndexMustBeInt:                  "Array index must be int",
		SemaArrayCreationSizeMustBeInt:           "Array size must be int",
		SemaArrayCreationInitializerTypeMismatch: "Array initializer type mismatch",
		SemaArrayCreationMustHaveSize:            "Array creation needs a size",
		SemaCannotAssignReadOnly:                 "Cannot assign to read-only target",
		SemaInvalidAssignmentTarget:              "Invalid assignment target",
		SemaCannotCheckType:                      "Type check can never succeed",
		SemaCannotCheckTypeOfVoid:                "Cannot check type of void",
		SemaRedundantTypeCheck:                   "Type check is always true",
		SemaConstVariableMustBeInitialized:       "Const variable must be initialized",
		SemaConstFieldMustHaveInitializer:        "Const field must have an initializer",
		SemaInvalidBreakOrContinue:               "break or continue outside of a loop",
		SemaConstructorCannotReturnValue:         "Constructor cannot return a value",
		SemaOperatorMustReturnValue:              "Operator must return a value",
		SemaMissingReturnValue:                   "Missing return value",
		SemaVoidFunctionReturnsValue:             "Void function cannot return a value",
		SemaImportError:                          "Import error",
		SemaDuplicateImport:                      "Duplicate import",
		IOLoadFileError:                          "I/O load file error",
		FutNotSupported:                          "Feature not supported yet",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("FUT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
