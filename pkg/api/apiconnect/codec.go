// Package apiconnect binds the api messages to Connect handlers and clients.
//
// The messages are plain Go structs, so the package registers a JSON codec
// under the names Connect negotiates for application/json in place of the
// default protojson codec.
package apiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Package prefix of every procedure.
const packageName = "sharedledger.v1"

// jsonCodec marshals api messages with encoding/json.
type jsonCodec struct {
	name string
}

var _ connect.Codec = jsonCodec{}

func (c jsonCodec) Name() string { return c.name }

func (c jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (c jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("unmarshal %T: %w", message, err)
	}
	return nil
}

// JSON is the codec clients use.
var JSON connect.Codec = jsonCodec{name: "json"}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(JSON),
		connect.WithCodec(jsonCodec{name: "json; charset=utf-8"}),
	}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSON)}, opts...)
}

func errUnimplemented(procedure string) error {
	return fmt.Errorf("%s is not implemented", procedure)
}
