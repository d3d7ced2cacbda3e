package codec

import "github.com/wirebind/wirebind/internal/options"

// config holds the behavior a Codec[T] can be configured with at New
// time, applied through the functional-options pattern of
// internal/options rather than a struct literal with exported fields.
// codec is the only package that takes options; layout.Compile and
// bitcodec take none.
type config struct {
	strict bool
}

// Option configures a Codec[T] at New time.
type Option = options.Option[*config]

// Strict makes DecodeBE/DecodeLE fail with errs.ErrTrailingData when a
// call does not consume the entire input buffer. Without it, a decode
// that runs past the aggregate's last field simply reports the
// consumed byte count and ignores the remainder, which is the more
// useful default for reading one aggregate out of a larger stream.
func Strict() Option {
	return options.NoError[*config](func(c *config) {
		c.strict = true
	})
}
