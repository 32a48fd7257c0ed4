package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information a command prints.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults     OutputCategory = iota // Generated paths, scan summaries
	OutputErrors                            // Errors with hints
	OutputDiagnostics                       // Directive and structure warnings

	// Level 1 (-v)
	OutputProgress // Per-rebuild progress in watch mode
	OutputConfig   // Which config file was loaded

	// Level 2 (-vv)
	OutputTiming // Scan and emit durations
	OutputFiles  // Every scanned file

	// Level 3 (-vvv)
	OutputManifestDump // Full manifest after scanning
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:      VerbosityUser,
	OutputErrors:       VerbosityUser,
	OutputDiagnostics:  VerbosityUser,
	OutputProgress:     VerbosityInfo,
	OutputConfig:       VerbosityInfo,
	OutputTiming:       VerbosityDebug,
	OutputFiles:        VerbosityDebug,
	OutputManifestDump: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputDiagnostics:  "diagnostics",
	OutputProgress:     "progress",
	OutputConfig:       "config",
	OutputTiming:       "timing",
	OutputFiles:        "files",
	OutputManifestDump: "manifest-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// VerboseCategories names, in order, the categories shown at verbosity on
// top of the default output.
func VerboseCategories(verbosity int) []string {
	var names []string
	for c := OutputResults; c <= OutputManifestDump; c++ {
		if categoryLevels[c] > VerbosityUser && ShouldOutput(verbosity, c) {
			names = append(names, CategoryName(c))
		}
	}
	return names
}
