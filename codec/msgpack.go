package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a MessagePack codec backed by github.com/vmihailenco/msgpack.
//
// MessagePack is compact and fast to decode, which suits values embedded in
// binary index files. It round-trips the usual structs/maps/slices as well
// as []byte without base64 inflation.
type Msgpack struct{}

// Marshal encodes the value to MessagePack.
func (Msgpack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

// Unmarshal decodes the MessagePack data into v.
func (Msgpack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// Name returns the unique name of the codec ("msgpack").
func (Msgpack) Name() string { return "msgpack" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly-written values. Formats that record the codec
// name can reopen existing files by selecting the codec via ByName.
var Default Codec = Msgpack{}
