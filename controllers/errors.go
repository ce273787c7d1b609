package controller

import "errors"

var (
	errSupervisorNotFound = errors.New("Supervisor not found")
	errSupervisorRole     = errors.New("supervisor_id must reference a sales supervisor")
)
