package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// ActorFromContext resolves the authenticated actor from the JWT claims
// placed in the context by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrInvalidActor
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Actor{}, ErrInvalidActor
	}

	actor := Actor{ID: userID, Role: Role(roleStr)}

	if companyID, ok := claims["company_id"].(string); ok && companyID != "" {
		actor.CompanyID = &companyID
	}

	return actor, nil
}
