package model

import "fmt"

var (
	ErrNotFound            = fmt.Errorf("not found")
	ErrAlreadyExists       = fmt.Errorf("already exists")
	ErrDuplicateName       = fmt.Errorf("name is already taken")
	ErrPermissionDenied    = fmt.Errorf("permission denied")
	ErrAssociationFailed   = fmt.Errorf("association store write failed")
	ErrPreconditionFailed  = fmt.Errorf("precondition failed")
	ErrUpstreamUnavailable = fmt.Errorf("upstream unavailable")
	ErrPartialFailure      = fmt.Errorf("operation partially completed")
)
