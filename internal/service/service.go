// Package service holds the business rules behind every route. Handlers
// parse requests; services validate, consult the guard and call repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"forum/internal/guard"
	"forum/internal/middleware"
	"forum/internal/models"
)

// Validation limits carried over from the original schema.
const (
	MinNameLength     = 3
	MinPasswordLength = 6
	MinPostLength     = 3
)

// authorize runs guard.Check and records denials.
func authorize(ctx context.Context, actor uint, t guard.Target, rel guard.Relation) error {
	err := guard.Check(actor, t, rel)
	if err != nil && guard.IsDenied(err) {
		middleware.GuardDenials.WithLabelValues(rel.String()).Inc()
		middleware.Logger.InfoContext(ctx, "guard denied",
			slog.Uint64("actor", uint64(actor)),
			slog.String("relation", rel.String()),
		)
	}
	return err
}

// internal wraps unexpected storage failures so the handler answers 500.
func internal(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
