package resolver

import "fmt"

// CodeModuleNotFound is the code of a NotFoundError.
const CodeModuleNotFound = "MODULE_NOT_FOUND"

// NotFoundError is returned when no file matches a module id.
type NotFoundError struct {
	ModuleID string
	BaseDir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Cannot find module '%s' from '%s'", e.ModuleID, e.BaseDir)
}

// Code returns MODULE_NOT_FOUND.
func (e *NotFoundError) Code() string {
	return CodeModuleNotFound
}
