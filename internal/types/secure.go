package types

// redactedPlaceholder is the string used to replace secret values in logs and serialization.
const redactedPlaceholder = "***REDACTED***"

var redactedJSON = []byte(`"***REDACTED***"`)

// SecretString keeps connection strings out of logs and config dumps.
// String and MarshalJSON return a placeholder; Unmask returns the raw value.
type SecretString string

func (s SecretString) String() string {
	return redactedPlaceholder
}

func (s SecretString) MarshalJSON() ([]byte, error) {
	return redactedJSON, nil
}

// Unmask returns the raw value. Use only where the driver needs it.
func (s SecretString) Unmask() string {
	return string(s)
}

// IsSet reports whether a non-empty value is configured.
func (s SecretString) IsSet() bool {
	return s != ""
}
