package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/streamside/panel/internal/core"
	"github.com/streamside/panel/internal/icons"
)

// CommandKind tags a parsed category-form submission. The form carries
// an explicit "action" field; nothing is inferred from which submit
// button happened to be present.
type CommandKind string

const (
	CmdAddCategory    CommandKind = "add"
	CmdRenameCategory CommandKind = "rename"
	CmdDeleteCategory CommandKind = "delete"
	CmdSetIcon        CommandKind = "set_icon"
	CmdReorder        CommandKind = "reorder"
)

// CategoryCommand is the tagged variant for a category mutation, parsed
// once at the boundary and dispatched exhaustively.
type CategoryCommand struct {
	Kind    CommandKind
	Name    string
	NewName string
	Order   []string
	Icon    *icons.Upload
}

var errUnknownAction = errors.New("unknown form action")

// parseCategoryCommand decodes one multipart form submission into a
// CategoryCommand. The caller must have capped r.Body with
// http.MaxBytesReader; an oversized body maps to icons.ErrTransport,
// an unparsable order encoding to ErrInvalidOrder.
func parseCategoryCommand(r *http.Request, maxUpload int64) (*CategoryCommand, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", icons.ErrTransport, tooBig.Limit)
		}
		// A plain urlencoded form (no file input) is still fine.
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	}

	cmd := &CategoryCommand{
		Kind:    CommandKind(r.FormValue("action")),
		Name:    strings.TrimSpace(r.FormValue("name")),
		NewName: strings.TrimSpace(r.FormValue("new_name")),
	}

	switch cmd.Kind {
	case CmdAddCategory, CmdSetIcon:
		cmd.Icon = formUpload(r, "icon")
	case CmdRenameCategory, CmdDeleteCategory:
		// name fields only
	case CmdReorder:
		raw := r.FormValue("order")
		if raw == "" {
			return nil, core.ErrInvalidOrder
		}
		if err := json.Unmarshal([]byte(raw), &cmd.Order); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrInvalidOrder, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownAction, r.FormValue("action"))
	}

	return cmd, nil
}

// formUpload buffers the named multipart file. A missing file returns
// nil (meaning "no upload"); a transfer failure is carried inside the
// Upload so the pipeline can classify it.
func formUpload(r *http.Request, field string) *icons.Upload {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || r.MultipartForm == nil {
			return nil
		}
		return &icons.Upload{Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return &icons.Upload{Filename: header.Filename, Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	return &icons.Upload{Filename: header.Filename, Data: data}
}
