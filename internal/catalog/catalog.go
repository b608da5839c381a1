// Package catalog loads tenant spoken-menu catalogs. A catalog is returned
// as an immutable snapshot: callers must not modify the returned slice.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/nadzzz/ordertaker/internal/menu"
)

var (
	// ErrTenantNotFound is returned when no catalog exists for a tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidTenant is returned for tenant ids outside [a-z0-9_-].
	ErrInvalidTenant = errors.New("invalid tenant id")
)

var tenantPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// ValidateTenant rejects tenant ids that could escape a catalog directory
// or do not follow the lowercase id convention.
func ValidateTenant(tenant string) error {
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("%w: %q", ErrInvalidTenant, tenant)
	}
	return nil
}

// Source provides catalog snapshots per tenant.
type Source interface {
	Catalog(ctx context.Context, tenant string) ([]menu.VoiceMenuMapping, error)
}
