package core

// EnvPrefix is prepended to every environment variable the CLI reads flag
// values from.
const EnvPrefix = "MAKECONFIG_"

// Flags holds the raw values of the root command flags. They are resolved
// into a [Config] once the command line has been parsed.
type Flags struct {
	LogLevel     string
	InputDir     string
	OutputDir    string
	SerialsFile  string
	IdentityFile string
	Validator    string

	// Ignored lists unknown root flags that were dropped before parsing.
	Ignored []string
}
