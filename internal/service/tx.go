package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"erpvendas/internal/apierror"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction; any error rolls the whole
// write back.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound error carrying msg and
// wraps anything else as an internal fault.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(msg)
	}
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// parseData accepts YYYY-MM-DD (midnight in loc) or RFC 3339 and returns the
// instant in UTC. A nil or blank value yields ok == false.
func parseData(s *string, loc *time.Location, label string) (t time.Time, ok bool, err error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return time.Time{}, false, nil
	}
	raw := strings.TrimSpace(*s)
	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err = time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, apierror.Validation(label + " inválida")
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
