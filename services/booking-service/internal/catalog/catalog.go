// Package catalog resolves the businesses, services and users that appointments reference.
package catalog

import (
	"context"

	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

// Each finder reports found=false for a missing entity and reserves err for faults.
type BusinessFinder interface {
	FindBusiness(ctx context.Context, id string) (model.Business, bool, error)
}

type ServiceFinder interface {
	FindService(ctx context.Context, id string) (model.Service, bool, error)
}

type UserFinder interface {
	FindUser(ctx context.Context, id string) (model.User, bool, error)
}

type Lookups interface {
	BusinessFinder
	ServiceFinder
	UserFinder
}

var (
	_ Lookups = (*Memory)(nil)
	_ Lookups = (*Postgres)(nil)
)
