package photonvalue

import "fmt"

// DecodeTypedValue reads a one-byte type tag followed by that type's
// payload, producing a fully-tagged Value. This is the entry point for any
// self-describing value: top-level parameters, Array/Dictionary elements
// tagged with the None/Null "per-element tag follows" sentinel, and
// ObjectArray elements (always self-tagged).
func DecodeTypedValue(c *Cursor) (Value, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode value tag")
	}
	return decodeValueOfKind(c, Kind(tag))
}

// decodeValueOfKind decodes the payload for an already-known kind; used for
// fixed-type Array/Dictionary elements where the element type is given once
// in the container header rather than per element.
func decodeValueOfKind(c *Cursor, kind Kind) (Value, error) {
	switch kind {
	case KindNone:
		return NoneValue(), nil
	case KindNull:
		return NullValue(), nil
	case KindBoolean:
		v, err := c.ReadBool()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Boolean")
		}
		return BooleanValue(v), nil
	case KindByte:
		v, err := c.ReadByte()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Byte")
		}
		return ByteValue(v), nil
	case KindShort:
		v, err := c.ReadInt16()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Short")
		}
		return ShortValue(v), nil
	case KindInteger:
		v, err := c.ReadUint32()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Integer")
		}
		return IntegerValue(v), nil
	case KindLong:
		v, err := c.ReadInt64()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Long")
		}
		return LongValue(v), nil
	case KindFloat:
		v, err := c.ReadFloat32()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Float")
		}
		return FloatValue(v), nil
	case KindDouble:
		v, err := c.ReadFloat64()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode Double")
		}
		return DoubleValue(v), nil
	case KindString:
		v, err := c.ReadString()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode String")
		}
		return StringValue(v), nil
	case KindByteArray:
		v, err := c.ReadBytes()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode ByteArray")
		}
		return ByteArrayValue(v), nil
	case KindBooleanArray:
		return decodeBooleanArray(c)
	case KindStringArray:
		return decodeStringArray(c)
	case KindArray:
		return decodeArray(c)
	case KindObjectArray:
		return decodeObjectArray(c)
	case KindDictionary:
		return decodeDictionary(c)
	case KindEventData:
		v, err := DecodeEventData(c)
		if err != nil {
			return Value{}, Wrap(err, "failed to decode EventData")
		}
		return EventDataValue(v), nil
	case KindOperationRequest:
		v, err := DecodeOperationRequest(c)
		if err != nil {
			return Value{}, Wrap(err, "failed to decode OperationRequest")
		}
		return OperationRequestValue(v), nil
	case KindOperationResponse:
		v, err := DecodeOperationResponse(c)
		if err != nil {
			return Value{}, Wrap(err, "failed to decode OperationResponse")
		}
		return OperationResponseValue(v), nil
	default:
		return Value{}, newDecodeError(fmt.Sprintf("unknown type code (0x%02x)", byte(kind)))
	}
}

// decodeContainerElement decodes one element of an Array/Dictionary whose
// header declared elementKind. KindNone/KindNull as the header's element
// kind is the "mixed types" sentinel: every element carries its own tag.
func decodeContainerElement(c *Cursor, elementKind Kind) (Value, error) {
	if isPerElementTagSentinel(byte(elementKind)) {
		return DecodeTypedValue(c)
	}
	return decodeValueOfKind(c, elementKind)
}

// decodeStringArray and decodeBooleanArray fully propagate an inner decode
// error: a short read partway through a homogeneous primitive array leaves
// no usable partial container, unlike Array/Dictionary/ObjectArray below.
func decodeStringArray(c *Cursor) (Value, error) {
	n, err := c.ReadCount()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode StringArray count")
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := c.ReadString()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode StringArray element")
		}
		out = append(out, s)
	}
	return StringArrayValue(out), nil
}

func decodeBooleanArray(c *Cursor) (Value, error) {
	n, err := c.ReadCount()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode BooleanArray count")
	}
	out := make([]bool, 0, n)
	for i := 0; i < n; i++ {
		b, err := c.ReadBool()
		if err != nil {
			return Value{}, Wrap(err, "failed to decode BooleanArray element")
		}
		out = append(out, b)
	}
	return BooleanArrayValue(out), nil
}

// decodeArray, decodeObjectArray and decodeDictionary keep whatever
// elements decoded successfully and stop at the first failing element
// instead of discarding the whole container: a single malformed element
// (or a count that overstates what the sender actually wrote) shouldn't
// cost the caller every other field already recovered.
func decodeArray(c *Cursor) (Value, error) {
	n, err := c.ReadCount()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode Array count")
	}
	elementTag, err := c.ReadByte()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode Array element type")
	}
	elementKind := Kind(elementTag)
	out := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := decodeContainerElement(c, elementKind)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return ArrayValue(out), nil
}

func decodeObjectArray(c *Cursor) (Value, error) {
	n, err := c.ReadCount()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode ObjectArray count")
	}
	out := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := DecodeTypedValue(c)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return ObjectArrayValue(out), nil
}

func decodeDictionary(c *Cursor) (Value, error) {
	keyTag, err := c.ReadByte()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode Dictionary key type")
	}
	valueTag, err := c.ReadByte()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode Dictionary value type")
	}
	n, err := c.ReadCount()
	if err != nil {
		return Value{}, Wrap(err, "failed to decode Dictionary count")
	}
	keyKind, valueKind := Kind(keyTag), Kind(valueTag)
	out := make(map[string]Value, n)
	for i := 0; i < n; i++ {
		k, err := decodeContainerElement(c, keyKind)
		if err != nil {
			break
		}
		v, err := decodeContainerElement(c, valueKind)
		if err != nil {
			break
		}
		out[k.String()] = v
	}
	return DictionaryValue(out), nil
}
