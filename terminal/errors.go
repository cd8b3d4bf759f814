package terminal

// ConfigurationError reports invalid construction input: a missing or
// degenerate surface, or a bad supplemental glyph sequence. It is the only
// fatal error the package produces; steady-state ingestion never fails.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "terminal: " + e.Reason + ": " + e.Err.Error()
	}
	return "terminal: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
