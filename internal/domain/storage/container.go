package storage

import (
	"bizdir/internal/domain/businesses"
	"bizdir/internal/domain/reviews"
	"bizdir/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	Users      users.Store
	Businesses businesses.Store
	Reviews    reviews.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Users:      users.NewRepository(db),
		Businesses: businesses.NewRepository(db),
		Reviews:    reviews.NewRepository(db),
	}
}
