package structfile

import (
	"log/slog"

	"github.com/hupe1980/structfile/codec"
)

type options struct {
	name     string
	onClose  func(*File)
	mapped   bool
	codec    codec.Codec
	logger   *slog.Logger
	mantissa int
	zeroExp  int
}

// Option configures File construction.
type Option func(*options)

// WithName sets the diagnostic label used in error messages. It has no
// semantic effect. When absent, the label is adopted from the handle's
// Name() string capability if it has one.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithCloseHook registers a callback invoked with the File during Close,
// after the mapped view is released and before the handle is closed. An
// owning storage layer uses this for open-file bookkeeping.
func WithCloseHook(fn func(*File)) Option {
	return func(o *options) {
		o.onClose = fn
	}
}

// WithMapping controls whether construction attempts a real memory mapping
// of the handle (default true). When disabled, or whenever a real mapping
// cannot be established, the Get family is served by positioned reads
// against the handle instead; results are identical either way.
func WithMapping(mapped bool) Option {
	return func(o *options) {
		o.mapped = mapped
	}
}

// WithCodec sets the codec used by WriteObject/ReadObject.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging. Only construction-time events
// (mapping established, mapping fallback) are logged; read/write paths
// never log. Pass nil to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFloat8Params overrides the compact-float parameters used by
// WriteFloat8/ReadFloat8/GetFloat8 (defaults DefaultMantissaBits,
// DefaultZeroExp). Writer and reader must agree on the parameters; they
// are not stored in the file.
func WithFloat8Params(mantissaBits, zeroExp int) Option {
	return func(o *options) {
		o.mantissa = mantissaBits
		o.zeroExp = zeroExp
	}
}
