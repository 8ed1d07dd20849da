package config

// BoolValue returns the value of an optional YAML flag, or defaultValue when
// the flag is absent.
func BoolValue(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

// DisableTimeOrDefault omits timestamps unless disable_time is false.
func (l Logger) DisableTimeOrDefault() bool {
	return BoolValue(l.DisableTime, true)
}

func (l Logger) JSONFormatOrDefault() bool {
	return BoolValue(l.JSONFormat, false)
}

func (l Logger) IncludeLocationOrDefault() bool {
	return BoolValue(l.IncludeLocation, false)
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
