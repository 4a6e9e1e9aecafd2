package auth

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}
