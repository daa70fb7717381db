package trimcmd

import (
	"encoding/json"
	"fmt"

	"github.com/seqforge/trimwrap/pkg/util"
)

// PigzMode controls which side of the trimmer invocation gets wrapped with
// compression sub-processes: neither, the two inputs, the four outputs, or both.
type PigzMode string

const (
	PigzNone   PigzMode = "none"
	PigzInput  PigzMode = "input"
	PigzOutput PigzMode = "output"
	PigzBoth   PigzMode = "both"
)

var pigzModeToString = map[PigzMode]string{
	PigzNone:   "none",
	PigzInput:  "input",
	PigzOutput: "output",
	PigzBoth:   "both",
}

var stringToPigzMode map[string]PigzMode

func init() {
	stringToPigzMode = util.InvertMap(pigzModeToString)
}

// pigzModeValues is the accepted set in its documented order, for error messages.
func pigzModeValues() []string {
	return []string{"none", "input", "output", "both"}
}

func (m PigzMode) String() string {
	if str, ok := pigzModeToString[m]; ok {
		return str
	}
	return fmt.Sprintf("unknown_pigz_mode(%s)", string(m))
}

// WrapsInput reports whether the input paths get a decompression fragment.
func (m PigzMode) WrapsInput() bool {
	return m == PigzInput || m == PigzBoth
}

// WrapsOutput reports whether the output paths get a compression fragment.
func (m PigzMode) WrapsOutput() bool {
	return m == PigzOutput || m == PigzBoth
}

// ParsePigzMode parses a string into a PigzMode. Anything outside the
// accepted set fails with a *ConfigError.
func ParsePigzMode(s string) (PigzMode, error) {
	if m, ok := stringToPigzMode[s]; ok {
		return m, nil
	}
	return "", &ConfigError{Param: "pigz mode", Value: s, Allowed: pigzModeValues()}
}

// MarshalJSON implements the json.Marshaler interface for PigzMode.
func (m PigzMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for PigzMode.
func (m *PigzMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pigz mode should be a string, got %s", data)
	}
	mode, err := ParsePigzMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
