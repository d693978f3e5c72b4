package photonvalue

// Kind is the one-byte TypeCode tag that precedes every encoded Value.
type Kind byte

const (
	KindNone              Kind = 0x00
	KindNull              Kind = 0x2A
	KindDictionary        Kind = 0x44
	KindStringArray       Kind = 0x61
	KindByte              Kind = 0x62
	KindDouble            Kind = 0x64
	KindEventData         Kind = 0x65
	KindFloat             Kind = 0x66
	KindInteger           Kind = 0x69
	KindShort             Kind = 0x6B
	KindLong              Kind = 0x6C
	KindBooleanArray      Kind = 0x6E
	KindBoolean           Kind = 0x6F
	KindOperationResponse Kind = 0x70
	KindOperationRequest  Kind = 0x71
	KindString            Kind = 0x73
	KindByteArray         Kind = 0x78
	KindArray             Kind = 0x79
	KindObjectArray       Kind = 0x7A
)

// sentinel type-codes inside Array/Dictionary headers meaning "a per-element
// tag byte follows", rather than a fixed element type for the whole container.
func isPerElementTagSentinel(k byte) bool {
	return k == byte(KindNone) || k == byte(KindNull)
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNull:
		return "Null"
	case KindDictionary:
		return "Dictionary"
	case KindStringArray:
		return "StringArray"
	case KindByte:
		return "Byte"
	case KindDouble:
		return "Double"
	case KindEventData:
		return "EventData"
	case KindFloat:
		return "Float"
	case KindInteger:
		return "Integer"
	case KindShort:
		return "Short"
	case KindLong:
		return "Long"
	case KindBooleanArray:
		return "BooleanArray"
	case KindBoolean:
		return "Boolean"
	case KindOperationResponse:
		return "OperationResponse"
	case KindOperationRequest:
		return "OperationRequest"
	case KindString:
		return "String"
	case KindByteArray:
		return "ByteArray"
	case KindArray:
		return "Array"
	case KindObjectArray:
		return "ObjectArray"
	default:
		return "Unknown"
	}
}
