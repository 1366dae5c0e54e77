package value

import "fmt"

// TokenKind identifies which variant a [Token] holds.
type TokenKind uint8

const (
	TokenPrimitive TokenKind = iota
	TokenBeginArray
	TokenEndArray
	TokenBeginObject
	TokenFieldKey
	TokenEndObject
	TokenSpecial
)

func (k TokenKind) String() string {
	switch k {
	case TokenPrimitive:
		return "Primitive"
	case TokenBeginArray:
		return "BeginArray"
	case TokenEndArray:
		return "EndArray"
	case TokenBeginObject:
		return "BeginObject"
	case TokenFieldKey:
		return "FieldKey"
	case TokenEndObject:
		return "EndObject"
	case TokenSpecial:
		return "Special"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// SpecialKind distinguishes the variants a [TokenSpecial] token carries.
type SpecialKind uint8

const (
	SpecialKindError SpecialKind = iota
	SpecialKindRef
)

// Token is one emission unit of a generator's structured output. A finite
// stream of tokens with matched Begin/End pairs is well-formed; [Aggregate]
// reconstructs a [Value] from a well-formed stream.
type Token struct {
	kind    TokenKind
	prim    Value
	key     string
	special SpecialKind
	err     error
}

// Primitive wraps a leaf Value as a Token.
func Primitive(v Value) Token { return Token{kind: TokenPrimitive, prim: v} }

// BeginArray, EndArray, BeginObject, EndObject are the structural bracket
// tokens emitted around array and object content.
func BeginArray() Token  { return Token{kind: TokenBeginArray} }
func EndArray() Token    { return Token{kind: TokenEndArray} }
func BeginObject() Token { return Token{kind: TokenBeginObject} }
func EndObject() Token   { return Token{kind: TokenEndObject} }

// FieldKey wraps an object field name emitted just before that field's
// value token(s).
func FieldKey(name string) Token { return Token{kind: TokenFieldKey, key: name} }

// SpecialError wraps a generator-level error as an out-of-band token,
// allowing a fallible token stream to surface its error without breaking
// Begin/End matching for the tokens already emitted.
func SpecialError(err error) Token {
	return Token{kind: TokenSpecial, special: SpecialKindError, err: err}
}

// Kind returns the Token's tagged kind.
func (t Token) Kind() TokenKind { return t.kind }

// AsPrimitive returns the wrapped Value, true if Kind() == TokenPrimitive.
func (t Token) AsPrimitive() (Value, bool) { return t.prim, t.kind == TokenPrimitive }

// AsFieldKey returns the wrapped name, true if Kind() == TokenFieldKey.
func (t Token) AsFieldKey() (string, bool) { return t.key, t.kind == TokenFieldKey }

// AsError returns the wrapped error, true if this is a Special(Error) token.
func (t Token) AsError() (error, bool) {
	return t.err, t.kind == TokenSpecial && t.special == SpecialKindError
}

// Aggregator reconstructs a Value from a well-formed token stream by
// tracking a stack of in-progress arrays/objects.
type Aggregator struct {
	stack []frame
}

type frame struct {
	isObject bool
	arr      []Value
	obj      *Object
	pendKey  string
	haveKey  bool
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator { return &Aggregator{} }

// Push feeds one token into the aggregator. It returns a completed Value
// and true once a push closes the outermost structure (i.e. the stack
// returns to empty after a primitive or an End token).
func (a *Aggregator) Push(t Token) (Value, bool, error) {
	switch t.kind {
	case TokenBeginArray:
		a.stack = append(a.stack, frame{})
		return Value{}, false, nil
	case TokenBeginObject:
		a.stack = append(a.stack, frame{isObject: true, obj: NewObject()})
		return Value{}, false, nil
	case TokenFieldKey:
		if len(a.stack) == 0 || !a.stack[len(a.stack)-1].isObject {
			return Value{}, false, fmt.Errorf("value: FieldKey token outside an open object")
		}
		top := &a.stack[len(a.stack)-1]
		top.pendKey = t.key
		top.haveKey = true
		return Value{}, false, nil
	case TokenEndArray:
		if len(a.stack) == 0 || a.stack[len(a.stack)-1].isObject {
			return Value{}, false, fmt.Errorf("value: EndArray token without a matching BeginArray")
		}
		top := a.stack[len(a.stack)-1]
		a.stack = a.stack[:len(a.stack)-1]
		return a.emit(Array(top.arr))
	case TokenEndObject:
		if len(a.stack) == 0 || !a.stack[len(a.stack)-1].isObject {
			return Value{}, false, fmt.Errorf("value: EndObject token without a matching BeginObject")
		}
		top := a.stack[len(a.stack)-1]
		a.stack = a.stack[:len(a.stack)-1]
		return a.emit(ObjectValue(top.obj))
	case TokenPrimitive:
		return a.emit(t.prim)
	case TokenSpecial:
		if err, ok := t.AsError(); ok {
			return Value{}, false, err
		}
		return Value{}, false, nil
	default:
		return Value{}, false, fmt.Errorf("value: unrecognized token kind %v", t.kind)
	}
}

// emit places a completed child value into the current parent frame, or
// reports stream completion if there is no parent (the stack is empty).
func (a *Aggregator) emit(v Value) (Value, bool, error) {
	if len(a.stack) == 0 {
		return v, true, nil
	}
	top := &a.stack[len(a.stack)-1]
	if top.isObject {
		if !top.haveKey {
			return Value{}, false, fmt.Errorf("value: object value token without a preceding FieldKey")
		}
		top.obj.Set(top.pendKey, v)
		top.haveKey = false
		top.pendKey = ""
	} else {
		top.arr = append(top.arr, v)
	}
	return Value{}, false, nil
}

// Aggregate drains a finite, well-formed token stream and returns the
// reconstructed outermost Value.
func Aggregate(tokens []Token) (Value, error) {
	agg := NewAggregator()
	var last Value
	var done bool
	for _, t := range tokens {
		v, complete, err := agg.Push(t)
		if err != nil {
			return Value{}, err
		}
		if complete {
			last, done = v, true
		}
	}
	if !done {
		return Value{}, fmt.Errorf("value: token stream ended without completing a top-level value")
	}
	return last, nil
}
