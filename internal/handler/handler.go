package handler

import (
	"Go_Scan/internal/logging"
	"Go_Scan/model"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// Auth is the account and session surface the handlers need.
type Auth interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, *model.Principal, error)
	Logout(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*model.Principal, error)
}

type Documents interface {
	Process(ctx context.Context, p *model.Principal, fileContent, fileName string) (*textract.GetDocumentTextDetectionOutput, error)
}

type TextRelay interface {
	Correct(ctx context.Context, text string) (string, error)
	Evaluate(ctx context.Context, text, question string) (string, error)
}

type Options struct {
	CookieSecure bool
	SessionTTL   time.Duration
	// MaxBodyBytes caps JSON request bodies; 0 means no limit.
	MaxBodyBytes int64
}

type Handler struct {
	auth   Auth
	docs   Documents
	text   TextRelay
	opts   Options
	logger logging.Logger
}

func New(auth Auth, docs Documents, text TextRelay, opts Options, logger logging.Logger) *Handler {
	return &Handler{auth: auth, docs: docs, text: text, opts: opts, logger: logger}
}
