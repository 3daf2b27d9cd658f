package generator

import "fmt"

// FileError reports a template that could not be turned into an output file.
type FileError struct {
	File string
	Op   string
	Err  error
}

func (fe *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", fe.Op, fe.File, fe.Err)
}

func (fe *FileError) Unwrap() error {
	return fe.Err
}
