package reports

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no analysis row joined to an agent for the identifier.
	ErrNotFound = errors.New("analysis not found")
	// ErrAssembly marks data-store faults while reading a report or catalog.
	ErrAssembly = errors.New("report assembly failed")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeData       = "data_error"
	ErrorCodeFile       = "file_error"
)

// AssemblyError records which fetch failed. No partial report accompanies it.
type AssemblyError struct {
	AnalysisID int64
	Stage      string
	Err        error
}

func (e *AssemblyError) Error() string {
	if e.AnalysisID == 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("assemble analysis %d: %s: %v", e.AnalysisID, e.Stage, e.Err)
}

func (e *AssemblyError) Unwrap() []error {
	return []error{ErrAssembly, e.Err}
}

func assemblyErr(analysisID int64, stage string, err error) error {
	return &AssemblyError{AnalysisID: analysisID, Stage: stage, Err: err}
}
