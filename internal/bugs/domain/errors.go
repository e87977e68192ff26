package domain

import "errors"

var ErrBugNotFound = errors.New("bug not found")
