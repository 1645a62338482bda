package mcp

import (
	"errors"
	"fmt"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
	"github.com/marev/cutline/internal/export"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, editor.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "session not found", RecoveryHint: "Call create_session or load_project first"}
	case errors.Is(err, asset.ErrAssetNotFound):
		return &APIError{Code: "ASSET_NOT_FOUND", Message: "asset not found", RecoveryHint: "Check the asset ID against list_assets"}
	case errors.Is(err, clip.ErrClipNotFound):
		return &APIError{Code: "CLIP_NOT_FOUND", Message: "clip not found", RecoveryHint: "Check the clip ID against list_clips"}
	case errors.Is(err, caption.ErrCaptionNotFound):
		return &APIError{Code: "CAPTION_NOT_FOUND", Message: "caption not found", RecoveryHint: "Check the caption ID against list_captions"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project ID against list_projects"}
	case errors.Is(err, export.ErrAlreadyRunning):
		return &APIError{Code: "EXPORT_IN_PROGRESS", Message: "an export is already running", RecoveryHint: "Wait for it to finish or call cancel_export"}
	case errors.Is(err, export.ErrNoContent):
		return &APIError{Code: "NO_CONTENT", Message: "nothing to export", RecoveryHint: "Add at least one clip or caption first"}
	case errors.Is(err, asset.ErrInvalidInput), errors.Is(err, clip.ErrInvalidInput), errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// toolError wraps a domain error for a tool response, falling back to
// an internal code for unmapped errors.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL", Message: err.Error()}
}
