package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across rpcgen.
// Use these constants instead of raw strings.
const (
	// Components
	FieldComponent = "component"
	FieldCommand   = "command"

	// Declarations
	FieldItem      = "item"
	FieldKind      = "kind"
	FieldProcedure = "procedure"
	FieldDirective = "directive"

	// Files and paths
	FieldFile   = "file"
	FieldLine   = "line"
	FieldDir    = "dir"
	FieldOutput = "output"
	FieldConfig = "config"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldDebounceMS = "debounce_ms"

	// Counts and sizes
	FieldCount      = "count"
	FieldFiles      = "files"
	FieldRecords    = "records"
	FieldSums       = "sums"
	FieldProcedures = "procedures"
	FieldBytes      = "bytes"
	FieldWorkers    = "workers"

	// Errors
	FieldError = "error"
)

// Component names used with ComponentLogger.
const (
	ComponentScan     = "scan"
	ComponentExtract  = "extract"
	ComponentGenerate = "generate"
	ComponentWatch    = "watch"
	ComponentConfig   = "config"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger(logger.ComponentScan)
//	log.Debugw("parsed file", logger.FieldFile, path)
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	fileLog := logger.ChildLogger(log, logger.FieldFile, path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
