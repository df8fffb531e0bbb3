package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	CopyError       = 4
	TransformError  = 5
	PartialSuccess  = 6
	DecodeError     = 7
	ExportError     = 8
	ServeError      = 9
)
