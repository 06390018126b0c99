package core

import "errors"

// Domain error taxonomy. All errors surface at the handler boundary as a
// message on the re-rendered form; none abort the process except a missing
// store at startup.
var (
	ErrNotFound          = errors.New("site not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrEmptyName         = errors.New("category name is empty")
	ErrDuplicateDomain   = errors.New("domain already exists")
	ErrDuplicateAdmin    = errors.New("username already exists")
	ErrInvalidOrder      = errors.New("invalid category order")
	ErrBadCredentials    = errors.New("invalid username or password")
)
