package photonvalue

// decodeParameters reads a parameter-index/value table: a 2-byte element
// count followed by repeated (1-byte parameter index, self-tagged value)
// pairs. Like Array/Dictionary, a failing element stops the table rather
// than discarding everything already read — a response or event that
// carries one malformed trailing field still yields its earlier fields.
func decodeParameters(c *Cursor) (Parameters, error) {
	n, err := c.ReadCount()
	if err != nil {
		return nil, Wrap(err, "failed to decode parameter table count")
	}
	params := make(Parameters, n)
	for i := 0; i < n; i++ {
		idx, err := c.ReadByte()
		if err != nil {
			break
		}
		v, err := DecodeTypedValue(c)
		if err != nil {
			break
		}
		params[idx] = v
	}
	return params, nil
}

// DecodeEventData decodes an EventData from a cursor positioned right after
// its discriminant (the Value container decoder uses this when an EventData
// value is nested inside a Parameters table).
func DecodeEventData(c *Cursor) (EventData, error) {
	code, err := c.ReadByte()
	if err != nil {
		return EventData{}, Wrap(err, "failed to decode event code")
	}
	params, err := decodeParameters(c)
	if err != nil {
		return EventData{}, Wrap(err, "failed to decode event parameters")
	}
	return EventData{Code: code, Parameters: params}, nil
}

// DecodeOperationRequest decodes an OperationRequest from a cursor
// positioned right after its discriminant.
func DecodeOperationRequest(c *Cursor) (OperationRequest, error) {
	code, err := c.ReadByte()
	if err != nil {
		return OperationRequest{}, Wrap(err, "failed to decode operation code")
	}
	params, err := decodeParameters(c)
	if err != nil {
		return OperationRequest{}, Wrap(err, "failed to decode operation parameters")
	}
	return OperationRequest{Code: code, Parameters: params}, nil
}

// DecodeOperationResponse decodes an OperationResponse from a cursor
// positioned right after its discriminant.
func DecodeOperationResponse(c *Cursor) (OperationResponse, error) {
	code, err := c.ReadByte()
	if err != nil {
		return OperationResponse{}, Wrap(err, "failed to decode operation code")
	}
	returnCode, err := c.ReadInt16()
	if err != nil {
		return OperationResponse{}, Wrap(err, "failed to decode return code")
	}
	debugValue, err := DecodeTypedValue(c)
	if err != nil {
		return OperationResponse{}, Wrap(err, "failed to decode debug message")
	}
	debugMessage, _ := debugValue.AsStr()
	params, err := decodeParameters(c)
	if err != nil {
		return OperationResponse{}, Wrap(err, "failed to decode operation parameters")
	}
	return OperationResponse{
		Code:         code,
		ReturnCode:   returnCode,
		DebugMessage: debugMessage,
		Parameters:   params,
	}, nil
}
