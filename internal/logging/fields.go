package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Rendering fields.
	FieldFlavor        = "flavor"
	FieldTheme         = "theme"
	FieldFormat        = "format"
	FieldHeadingNumber = "heading_number"
	FieldHeadings      = "headings"
	FieldMath          = "math"
	FieldJobs          = "jobs"

	// Build statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"

	// Server fields.
	FieldAddr     = "addr"
	FieldRoot     = "root"
	FieldMethod   = "method"
	FieldStatus   = "status"
	FieldDuration = "duration"
	FieldRemote   = "remote"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
