package balance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// This file implements the interchange tree: the untyped-JSON representation
// that transactions pass through on their way to the cache file and into
// hand-built request bodies. Instead of a map[string]any with dynamic casts,
// the tree is a tagged set of node kinds, so converting a record to and from
// it is an exhaustive type switch. Absence is modeled by a key missing from
// its Object; objects remember field insertion order so the emitted JSON is
// stable.

// Value is one node of the interchange tree.
type Value interface {
	json.Marshaler
	isValue()
}

// Int is an integral JSON number (ids, counts).
type Int int64

// Num is a non-integral JSON number, held as a decimal so foreign files
// survive a load/save cycle without float drift.
type Num struct{ decimal.Decimal }

// Text is a JSON string.
type Text string

// Bool is a JSON boolean.
type Bool bool

// Null is a JSON null. The bridge never emits it (absent fields are omitted),
// but foreign files may contain it.
type Null struct{}

// List is a JSON array.
type List []Value

// Object is a JSON object that preserves field insertion order.
type Object struct {
	fields []objectField
}

type objectField struct {
	key   string
	value Value
}

func (Int) isValue()     {}
func (Num) isValue()     {}
func (Text) isValue()    {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (List) isValue()    {}
func (*Object) isValue() {}

func (v Int) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}

func (v Num) MarshalJSON() ([]byte, error) {
	return []byte(v.Decimal.String()), nil
}

func (v Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v Bool) MarshalJSON() ([]byte, error) {
	return strconv.AppendBool(nil, bool(v)), nil
}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (v List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, el := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// NewObject returns an empty object.
func NewObject() *Object { return &Object{} }

// Set adds a field or replaces an existing one in place, preserving its
// position. It returns the object to allow chaining while building trees.
func (o *Object) Set(key string, v Value) *Object {
	for i := range o.fields {
		if o.fields[i].key == key {
			o.fields[i].value = v
			return o
		}
	}
	o.fields = append(o.fields, objectField{key, v})
	return o
}

// Get returns the value stored under key, if any.
func (o *Object) Get(key string) (Value, bool) {
	for _, f := range o.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.fields) }

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.key
	}
	return keys
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, f := range o.fields {
		w.Append(f.key, f.value)
	}
	return w.MarshalJSON()
}

// ParseValue parses raw JSON into an interchange tree. Failures are
// whole-document failures and reported as ErrSerialization.
func ParseValue(data []byte) (Value, error) {
	return DecodeValue(bytes.NewReader(data))
}

// DecodeValue reads a single JSON value from r into an interchange tree.
func DecodeValue(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return obj, nil
		case '[':
			list := List{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return Text(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			i, err := t.Int64()
			if err == nil {
				return Int(i), nil
			}
		}
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return nil, fmt.Errorf("unsupported number %q: %v", t.String(), err)
		}
		return Num{d}, nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Typed accessors used by the record decoders. Each reports a missing key or
// a kind mismatch as a FieldError carrying the dotted path to the field.

func (o *Object) fieldAt(path, key string) (Value, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, &FieldError{Path: joinPath(path, key), Err: fmt.Errorf("missing required field")}
	}
	return v, nil
}

func (o *Object) intAt(path, key string) (int, error) {
	v, err := o.fieldAt(path, key)
	if err != nil {
		return 0, err
	}
	i, ok := v.(Int)
	if !ok {
		return 0, &FieldError{Path: joinPath(path, key), Err: fmt.Errorf("expected an integer, got %T", v)}
	}
	return int(i), nil
}

func (o *Object) textAt(path, key string) (string, error) {
	v, err := o.fieldAt(path, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(Text)
	if !ok {
		return "", &FieldError{Path: joinPath(path, key), Err: fmt.Errorf("expected a string, got %T", v)}
	}
	return string(s), nil
}

func (o *Object) boolAt(path, key string) (bool, error) {
	v, err := o.fieldAt(path, key)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, &FieldError{Path: joinPath(path, key), Err: fmt.Errorf("expected a boolean, got %T", v)}
	}
	return bool(b), nil
}

// decimalAt reads a decimal-as-string field. A native JSON number is a kind
// mismatch: monetary values are never allowed to travel as binary floats.
func (o *Object) decimalAt(path, key string) (decimal.Decimal, error) {
	s, err := o.textAt(path, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := DecodeDecimal(s)
	if err != nil {
		return decimal.Decimal{}, &FieldError{Path: joinPath(path, key), Err: err}
	}
	return d, nil
}

func (o *Object) timeAt(path, key string) (time.Time, error) {
	s, err := o.textAt(path, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := DecodeTimestamp(s)
	if err != nil {
		return time.Time{}, &FieldError{Path: joinPath(path, key), Err: err}
	}
	return t, nil
}

func (o *Object) objectAt(path, key string) (*Object, error) {
	v, err := o.fieldAt(path, key)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &FieldError{Path: joinPath(path, key), Err: fmt.Errorf("expected an object, got %T", v)}
	}
	return obj, nil
}

// optional variants: absence (and null) yield the zero value without error.

func (o *Object) optionalIntAt(path, key string) (int, error) {
	if v, ok := o.Get(key); !ok || v == (Null{}) {
		return 0, nil
	}
	return o.intAt(path, key)
}

func (o *Object) optionalTextAt(path, key string) (*string, error) {
	v, ok := o.Get(key)
	if !ok || v == (Null{}) {
		return nil, nil
	}
	s, ok := v.(Text)
	if !ok {
		return nil, &FieldError{Path: joinPath(path, key), Err: fmt.Errorf("expected a string, got %T", v)}
	}
	str := string(s)
	return &str, nil
}

func (o *Object) optionalTimeAt(path, key string) (time.Time, error) {
	if v, ok := o.Get(key); !ok || v == (Null{}) {
		return time.Time{}, nil
	}
	return o.timeAt(path, key)
}
