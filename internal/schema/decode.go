package schema

import "github.com/zonemeter/zonemeter/internal/photonvalue"

// fieldValue is the widened result of decoding one field; which member is
// meaningful is determined by the FieldSpec.Kind that produced it.
type fieldValue struct {
	Number      uint32
	Float       float32
	Str         string
	StrList     []string
	NumList     []uint32
	NumListList [][]uint32
}

// decodeFields walks spec's fields against params, widening each present
// value per its declared kind. A mandatory field that is absent, or whose
// Value doesn't match its declared kind, fails the whole message (the
// second return is false). An optional field in either of those states is
// simply omitted from the result, matching the "None" semantics of a
// missing optional field.
func decodeFields(params photonvalue.Parameters, spec MessageSpec) (map[string]fieldValue, bool) {
	out := make(map[string]fieldValue, len(spec.Fields))
	for _, f := range spec.Fields {
		raw, found := params[f.ParamIndex]
		if !found {
			if f.Optional {
				continue
			}
			return nil, false
		}
		v, ok := decodeFieldValue(raw, f.Kind)
		if !ok {
			if f.Optional {
				continue
			}
			return nil, false
		}
		out[f.Name] = v
	}
	return out, true
}

func decodeFieldValue(v photonvalue.Value, kind FieldKind) (fieldValue, bool) {
	switch kind {
	case FieldNumber:
		n, ok := widenNumber(v)
		return fieldValue{Number: n}, ok
	case FieldFloat:
		f, ok := v.AsFloat()
		return fieldValue{Float: f}, ok
	case FieldString:
		s, ok := v.AsStr()
		return fieldValue{Str: s}, ok
	case FieldStringList:
		arr, ok := v.AsArray()
		if !ok {
			return fieldValue{}, false
		}
		strs := make([]string, 0, len(arr))
		for _, elem := range arr {
			s, ok := elem.AsStr()
			if !ok {
				continue
			}
			strs = append(strs, s)
		}
		return fieldValue{StrList: strs}, true
	case FieldNumberList, FieldItems:
		nums, ok := widenNumberList(v)
		return fieldValue{NumList: nums}, ok
	case FieldNumberListList:
		arr, ok := v.AsArray()
		if !ok {
			return fieldValue{}, false
		}
		out := make([][]uint32, 0, len(arr))
		for _, elem := range arr {
			nums, ok := widenNumberList(elem)
			if !ok {
				continue
			}
			out = append(out, nums)
		}
		return fieldValue{NumListList: out}, true
	default:
		return fieldValue{}, false
	}
}

// widenNumber accepts Short, Integer or Byte, matching the schema's
// "Number accepts Short|Integer|Byte" rule.
func widenNumber(v photonvalue.Value) (uint32, bool) {
	if s, ok := v.AsShort(); ok {
		return uint32(s), true
	}
	if i, ok := v.AsInteger(); ok {
		return i, true
	}
	if b, ok := v.AsByte(); ok {
		return uint32(b), true
	}
	return 0, false
}

// widenNumberList accepts an Array of Short/Byte elements, or a raw
// ByteArray, widening each element to u32.
func widenNumberList(v photonvalue.Value) ([]uint32, bool) {
	if arr, ok := v.AsArray(); ok {
		out := make([]uint32, 0, len(arr))
		for _, elem := range arr {
			n, ok := widenNumber(elem)
			if !ok {
				continue
			}
			out = append(out, n)
		}
		return out, true
	}
	if bytes, ok := v.AsByteArray(); ok {
		out := make([]uint32, len(bytes))
		for i, b := range bytes {
			out[i] = uint32(b)
		}
		return out, true
	}
	return nil, false
}
