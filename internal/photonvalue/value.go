package photonvalue

import "fmt"

// Parameters is the map<u8, Value> carried by every EventData,
// OperationRequest and OperationResponse.
type Parameters map[uint8]Value

// EventData is an Event message body: an event code plus its parameters.
type EventData struct {
	Code       uint8
	Parameters Parameters
}

// OperationRequest is a Request message body.
type OperationRequest struct {
	Code       uint8
	Parameters Parameters
}

// OperationResponse is a Response message body, adding a return code and
// debug message to the parameter table.
type OperationResponse struct {
	Code         uint8
	ReturnCode   int16
	DebugMessage string
	Parameters   Parameters
}

// Value is a tagged variant over the Photon wire value types. Go has no
// native sum type, so the payload is held behind `any` and accessed through
// the typed getters below; Kind is always consistent with the payload's
// dynamic type.
type Value struct {
	Kind    Kind
	payload any
}

func NoneValue() Value { return Value{Kind: KindNone} }
func NullValue() Value { return Value{Kind: KindNull} }

func BooleanValue(v bool) Value           { return Value{KindBoolean, v} }
func ByteValue(v byte) Value              { return Value{KindByte, v} }
func ShortValue(v int16) Value            { return Value{KindShort, v} }
func IntegerValue(v uint32) Value         { return Value{KindInteger, v} }
func LongValue(v int64) Value             { return Value{KindLong, v} }
func FloatValue(v float32) Value          { return Value{KindFloat, v} }
func DoubleValue(v float64) Value         { return Value{KindDouble, v} }
func StringValue(v string) Value          { return Value{KindString, v} }
func ByteArrayValue(v []byte) Value       { return Value{KindByteArray, v} }
func BooleanArrayValue(v []bool) Value    { return Value{KindBooleanArray, v} }
func StringArrayValue(v []string) Value   { return Value{KindStringArray, v} }
func ArrayValue(v []Value) Value          { return Value{KindArray, v} }
func ObjectArrayValue(v []Value) Value    { return Value{KindObjectArray, v} }
func DictionaryValue(v map[string]Value) Value { return Value{KindDictionary, v} }

func EventDataValue(v EventData) Value                 { return Value{KindEventData, v} }
func OperationRequestValue(v OperationRequest) Value    { return Value{KindOperationRequest, v} }
func OperationResponseValue(v OperationResponse) Value  { return Value{KindOperationResponse, v} }

func (v Value) AsBool() (bool, bool)             { b, ok := v.payload.(bool); return b, ok }
func (v Value) AsByte() (byte, bool)             { b, ok := v.payload.(byte); return b, ok }
func (v Value) AsShort() (int16, bool)           { s, ok := v.payload.(int16); return s, ok }
func (v Value) AsInteger() (uint32, bool)        { i, ok := v.payload.(uint32); return i, ok }
func (v Value) AsLong() (int64, bool)            { l, ok := v.payload.(int64); return l, ok }
func (v Value) AsFloat() (float32, bool)         { f, ok := v.payload.(float32); return f, ok }
func (v Value) AsDouble() (float64, bool)        { d, ok := v.payload.(float64); return d, ok }
func (v Value) AsStr() (string, bool)            { s, ok := v.payload.(string); return s, ok }
func (v Value) AsByteArray() ([]byte, bool)      { b, ok := v.payload.([]byte); return b, ok }
func (v Value) AsBoolArray() ([]bool, bool)      { b, ok := v.payload.([]bool); return b, ok }
func (v Value) AsStrArray() ([]string, bool)     { s, ok := v.payload.([]string); return s, ok }
func (v Value) AsArray() ([]Value, bool)         { a, ok := v.payload.([]Value); return a, ok }
func (v Value) AsObjectArray() ([]Value, bool)   { a, ok := v.payload.([]Value); return a, ok }
func (v Value) AsDictionary() (map[string]Value, bool) {
	d, ok := v.payload.(map[string]Value)
	return d, ok
}
func (v Value) AsEventData() (EventData, bool) {
	e, ok := v.payload.(EventData)
	return e, ok
}
func (v Value) AsOperationRequest() (OperationRequest, bool) {
	r, ok := v.payload.(OperationRequest)
	return r, ok
}
func (v Value) AsOperationResponse() (OperationResponse, bool) {
	r, ok := v.payload.(OperationResponse)
	return r, ok
}

// String renders the value the way Dictionary keys are stringified: keys in
// a Dictionary<Value,Value> are keyed by the Go %v rendering of the decoded
// key Value.
func (v Value) String() string {
	switch v.Kind {
	case KindNone, KindNull:
		return v.Kind.String()
	default:
		return fmt.Sprintf("%v", v.payload)
	}
}
