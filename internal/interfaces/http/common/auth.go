package common

import "context"

type contextKey string

const (
	authUserContextKey           contextKey = "authUser"
	participantSessionContextKey contextKey = "participantSession"
)

// AuthenticatedUser represents the JWT-derived admin principal.
type AuthenticatedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

// ContextWithUser stores the authenticated admin user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated admin user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}

// ParticipantSession represents the token-derived participant principal.
// A session is always bound to exactly one campaign.
type ParticipantSession struct {
	ParticipantID string `json:"participantId"`
	CampaignID    string `json:"campaignId"`
}

// ContextWithParticipant stores the participant session into context.
func ContextWithParticipant(ctx context.Context, session ParticipantSession) context.Context {
	return context.WithValue(ctx, participantSessionContextKey, session)
}

// ParticipantFromContext extracts the participant session from context.
func ParticipantFromContext(ctx context.Context) (ParticipantSession, bool) {
	session, ok := ctx.Value(participantSessionContextKey).(ParticipantSession)
	return session, ok
}
