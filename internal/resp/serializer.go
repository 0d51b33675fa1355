package resp

import "bytes"

// SerializeCommand encodes cmd and its arguments as a standard array-form
// request, the shape a client or a command log would emit.
func SerializeCommand(cmd string, args []Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	elements := make([]Value, 1+len(args))
	elements[0] = MakeBulkStringFromString(cmd)
	copy(elements[1:], args)

	if err := enc.Write(MakeArray(elements)); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
