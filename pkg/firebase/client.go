package firebase

import (
	"context"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/logger"
)

var (
	errProjectIDRequired = errors.New("firebase project id is required")
	errLoggerRequired    = errors.New("firebase logger is required")
)

// Client exposes the Firebase surfaces the back office depends on:
// Cloud Messaging for push delivery and Auth for identity checks.
type Client struct {
	app       *firebase.App
	auth      *fbauth.Client
	messaging *messaging.Client
	projectID string
	logger    *logger.Logger
}

// NewClient initializes the Firebase app and its auth/messaging handles.
func NewClient(ctx context.Context, cfg config.FirebaseConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, errProjectIDRequired
	}

	opts := []option.ClientOption{}
	if creds := strings.TrimSpace(cfg.CredentialsJSON); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else if path := strings.TrimSpace(cfg.ApplicationCredentials); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	c := &Client{
		app:       app,
		auth:      authClient,
		messaging: messagingClient,
		projectID: projectID,
		logger:    logg,
	}

	logg.Info(ctx, "firebase client initialized")
	return c, nil
}

// ProjectID reports the configured Firebase project.
func (c *Client) ProjectID() string {
	if c == nil {
		return ""
	}
	return c.projectID
}
