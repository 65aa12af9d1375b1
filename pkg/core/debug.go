package core

// DebugMode controls whether diagnostic surfaces include value
// contents. When true, devtools snapshots and error output carry
// formatted values; when false they carry only counts and types.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the library.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
