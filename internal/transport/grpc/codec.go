package grpc

import "encoding/json"

// jsonCodec carries the message package's JSON types over gRPC so no
// generated protobuf code is needed. Clients must use the same codec
// (content-subtype "json").
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return "json" }
