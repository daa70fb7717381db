package trimcmd

import (
	"encoding/json"
	"fmt"

	"github.com/seqforge/trimwrap/pkg/util"
)

// Compressor selects the external (de)compression program placed inside the
// process-substitution fragments.
type Compressor string

const (
	CompressorNone Compressor = "none"
	CompressorGzip Compressor = "gzip"
	CompressorPigz Compressor = "pigz"
)

var compressorToString = map[Compressor]string{
	CompressorNone: "none",
	CompressorGzip: "gzip",
	CompressorPigz: "pigz",
}

var stringToCompressor map[string]Compressor

func init() {
	// Inverting the map at runtime ensures compressorToString is fully loaded
	stringToCompressor = util.InvertMap(compressorToString)
}

// compressorValues is the accepted set in its documented order, for error messages.
func compressorValues() []string {
	return []string{"none", "gzip", "pigz"}
}

func (c Compressor) String() string {
	if str, ok := compressorToString[c]; ok {
		return str
	}
	return fmt.Sprintf("unknown_compressor(%s)", string(c))
}

// ParseCompressor parses a string into a Compressor. Anything outside the
// accepted set fails with a *ConfigError.
func ParseCompressor(s string) (Compressor, error) {
	if c, ok := stringToCompressor[s]; ok {
		return c, nil
	}
	return "", &ConfigError{Param: "compression method", Value: s, Allowed: compressorValues()}
}

// MarshalJSON implements the json.Marshaler interface for Compressor.
func (c Compressor) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Compressor.
func (c *Compressor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("compression method should be a string, got %s", data)
	}
	compressor, err := ParseCompressor(s)
	if err != nil {
		return err
	}
	*c = compressor
	return nil
}
