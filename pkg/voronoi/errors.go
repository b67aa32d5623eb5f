package voronoi

import "fmt"

// ConfigurationError reports invalid input detected before the external
// engine is invoked, such as too few centroids.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("voronoi: configuration: %s", e.Message)
}

// ExternalProcessError reports a failure of the external tessellation
// engine: missing binary, execution failure, or unreadable output.
type ExternalProcessError struct {
	Op  string
	Err error
}

func (e ExternalProcessError) Error() string {
	return fmt.Sprintf("voronoi: engine %s: %v", e.Op, e.Err)
}

func (e ExternalProcessError) Unwrap() error {
	return e.Err
}
