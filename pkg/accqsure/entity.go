package accqsure

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeEntity maps an API payload into a typed record. Unknown server
// fields are ignored; sparse payloads produce sparse records. Callers check
// for a literally absent (nil) payload before decoding.
func decodeEntity(payload interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build entity decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("failed to decode entity: %w", err)
	}
	return nil
}
