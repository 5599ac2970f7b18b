package context

// ConflictError is returned when an explicit --company/--project/--resource
// flag disagrees with the scope the current directory already implies.
type ConflictError struct {
	Field string
	Path  string
	Flag  string
}

func (e *ConflictError) Error() string {
	return "context conflict: " + e.Field + " from path is " + e.Path + " but flag says " + e.Flag
}
