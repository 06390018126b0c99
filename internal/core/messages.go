package core

import (
	"errors"

	"github.com/streamside/panel/internal/icons"
	"github.com/streamside/panel/internal/store"
)

// UserMessage is the operator-facing form of a domain error. The code is
// quoted to support staff when an operator reports a problem.
type UserMessage struct {
	Message string
	Code    string
}

// messageTable maps sentinel errors to operator-facing messages.
// Order matters only in that the first match wins.
var messageTable = []struct {
	err error
	msg UserMessage
}{
	{ErrDuplicateCategory, UserMessage{"That sport category already exists on this site", "CAT001"}},
	{ErrCategoryNotFound, UserMessage{"That sport category does not exist on this site", "CAT002"}},
	{ErrInvalidOrder, UserMessage{"The submitted category order does not match the current category list", "CAT003"}},
	{ErrEmptyName, UserMessage{"Category name must not be empty", "CAT004"}},
	{ErrDuplicateDomain, UserMessage{"A site with that domain already exists", "SITE001"}},
	{ErrNotFound, UserMessage{"That site does not exist", "SITE002"}},
	{ErrDuplicateAdmin, UserMessage{"That username is already taken", "ADM001"}},
	{ErrBadCredentials, UserMessage{"Invalid username or password", "ADM002"}},
	{icons.ErrNoFile, UserMessage{"No image file was selected", "IMG001"}},
	{icons.ErrTransport, UserMessage{"The image upload did not complete; please try again", "IMG002"}},
	{icons.ErrInvalidExtension, UserMessage{"Icons must be .webp, .svg or .avif files", "IMG003"}},
	{icons.ErrInvalidContentType, UserMessage{"The file content does not match its extension", "IMG004"}},
	{icons.ErrUnsupportedImage, UserMessage{"The image could not be decoded on this server", "IMG005"}},
	{icons.ErrWrite, UserMessage{"The icon could not be written to disk", "IMG006"}},
	{store.ErrWrite, UserMessage{"Changes could not be saved; check file permissions", "STORE001"}},
	{store.ErrParse, UserMessage{"The configuration file on disk is corrupt", "STORE002"}},
	{store.ErrNotFound, UserMessage{"The configuration file is missing", "STORE003"}},
	{store.ErrRead, UserMessage{"The configuration file could not be read; check file permissions", "STORE004"}},
}

// defaultMessage is the fallback for unmapped errors.
var defaultMessage = UserMessage{"An unexpected error occurred; please try again", "ERR000"}

// MapError converts a domain error into an operator-facing message.
// Unmapped errors fall back to a generic message with code ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, entry := range messageTable {
		if errors.Is(err, entry.err) {
			return entry.msg
		}
	}
	return defaultMessage
}
