package trimcmd

import (
	"fmt"
	"strings"
)

// ConfigError reports a parameter whose value falls outside its closed set of
// accepted values. It carries both the offending value and the accepted set so
// a misconfiguration is diagnosable from the message alone.
type ConfigError struct {
	Param   string
	Value   string
	Allowed []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %q. Must be %s", e.Param, e.Value, quotedList(e.Allowed))
}

// quotedList renders []string{"none", "gzip", "pigz"} as "'none', 'gzip' or 'pigz'".
func quotedList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
