package api

import (
	"context"

	"github.com/dkorchagin/logbook/internal/models"
)

// Client is the transport-facing contract to the logbook backend.
//
// Tokens are passed per call rather than stored in the client: the session
// store owns the credential and remains the single writer of it.
type Client interface {
	Close() error
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.Identity, error)
	Notifications(ctx context.Context, token string) ([]models.Notification, error)
	SetFollowBack(ctx context.Context, token, username string, follow bool) error
}
