package engine

import (
	"encoding/json"
	"fmt"

	"github.com/seqforge/trimwrap/pkg/util"
)

// Substitution selects how the compression side-processes are realized:
// shell process substitution around external pigz/gzip binaries, or the
// in-process named-pipe engine.
type Substitution string

const (
	SubstitutionShell  Substitution = "shell"
	SubstitutionNative Substitution = "native"
)

var substitutionToString = map[Substitution]string{
	SubstitutionShell:  "shell",
	SubstitutionNative: "native",
}

var stringToSubstitution map[string]Substitution

func init() {
	stringToSubstitution = util.InvertMap(substitutionToString)
}

func (s Substitution) String() string {
	if str, ok := substitutionToString[s]; ok {
		return str
	}
	return fmt.Sprintf("unknown_substitution_engine(%s)", string(s))
}

// ParseSubstitution parses a string and returns the corresponding Substitution.
func ParseSubstitution(s string) (Substitution, error) {
	if sub, ok := stringToSubstitution[s]; ok {
		return sub, nil
	}
	return "", fmt.Errorf("invalid substitution engine: %q. Must be 'shell' or 'native'", s)
}

// MarshalJSON implements the json.Marshaler interface for Substitution.
func (s Substitution) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Substitution.
func (s *Substitution) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("substitution engine should be a string, got %s", data)
	}
	sub, err := ParseSubstitution(str)
	if err != nil {
		return err
	}
	*s = sub
	return nil
}
