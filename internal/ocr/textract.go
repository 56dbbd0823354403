// Package ocr runs asynchronous Textract text detection jobs and waits for
// their result.
package ocr

import (
	"Go_Scan/internal/awsx"
	"Go_Scan/internal/logging"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"golang.org/x/time/rate"
)

var (
	ErrJobFailed       = errors.New("text detection job failed")
	ErrMalformedStatus = errors.New("malformed text detection status")
	ErrPollExhausted   = errors.New("text detection job did not finish in time")
	ErrShuttingDown    = errors.New("server is shutting down")
)

// TextractAPI is the part of the Textract client the poller calls.
type TextractAPI interface {
	StartDocumentTextDetection(ctx context.Context, params *textract.StartDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.StartDocumentTextDetectionOutput, error)
	GetDocumentTextDetection(ctx context.Context, params *textract.GetDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.GetDocumentTextDetectionOutput, error)
}

type Options struct {
	PollInterval time.Duration
	MaxAttempts  int
}

type Client struct {
	api         TextractAPI
	credentials aws.CredentialsProvider
	opts        Options
	logger      logging.Logger

	// closed by Shutdown; aborts every Wait in flight
	quit     context.Context
	quitFunc context.CancelFunc
}

func NewClient(api TextractAPI, credentials aws.CredentialsProvider, opts Options, logger logging.Logger) *Client {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	quit, quitFunc := context.WithCancel(context.Background())
	return &Client{api: api, credentials: credentials, opts: opts, logger: logger, quit: quit, quitFunc: quitFunc}
}

// Shutdown aborts pending and future waits with ErrShuttingDown. Other
// requests keep their contexts so the HTTP server can drain them.
func (c *Client) Shutdown() {
	c.quitFunc()
}

// NewTextractClient wires the SDK client from the shared AWS config.
func NewTextractClient(cfg aws.Config, opts Options, logger logging.Logger) *Client {
	return NewClient(textract.NewFromConfig(cfg), cfg.Credentials, opts, logger)
}

// Start begins text detection on an object already in the bucket and returns the job id.
func (c *Client) Start(ctx context.Context, bucket, key string) (string, error) {
	if err := awsx.RequireCredentials(ctx, c.credentials); err != nil {
		return "", err
	}
	out, err := c.api.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("start text detection: %w", awsx.ClassifyCredentialError(err))
	}
	jobID := aws.ToString(out.JobId)
	if jobID == "" {
		return "", fmt.Errorf("start text detection: %w: empty job id", ErrMalformedStatus)
	}
	c.logger.Info(ctx, "text detection job started", "job_id", jobID, "key", key)
	return jobID, nil
}

// Wait polls the job at the configured interval until it reaches a terminal
// state, the attempt budget runs out, ctx is done or Shutdown is called. The
// first poll is immediate. A successful result is returned as Textract
// produced it, with every result page's blocks gathered into the first page.
func (c *Client) Wait(ctx context.Context, jobID string) (*textract.GetDocumentTextDetectionOutput, error) {
	if c.quit.Err() != nil {
		return nil, ErrShuttingDown
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.quit, cancel)
	defer stop()

	limiter := rate.NewLimiter(rate.Every(c.opts.PollInterval), 1)
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			if c.quit.Err() != nil {
				return nil, fmt.Errorf("wait for job %s: %w", jobID, ErrShuttingDown)
			}
			return nil, fmt.Errorf("wait for job %s: %w", jobID, err)
		}
		out, err := c.api.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId: aws.String(jobID),
		})
		if err != nil {
			if c.quit.Err() != nil {
				return nil, fmt.Errorf("get job %s: %w", jobID, ErrShuttingDown)
			}
			return nil, fmt.Errorf("get job %s: %w", jobID, awsx.ClassifyCredentialError(err))
		}
		if out == nil || out.JobStatus == "" {
			return nil, ErrMalformedStatus
		}
		switch out.JobStatus {
		case types.JobStatusSucceeded, types.JobStatusPartialSuccess:
			return c.collectPages(ctx, jobID, out)
		case types.JobStatusFailed:
			if msg := aws.ToString(out.StatusMessage); msg != "" {
				return nil, fmt.Errorf("%w: %s", ErrJobFailed, msg)
			}
			return nil, ErrJobFailed
		default:
			c.logger.Info(ctx, "text detection job in progress",
				"job_id", jobID, "status", string(out.JobStatus), "attempt", attempt)
		}
	}
	return nil, ErrPollExhausted
}

// Detect runs Start and Wait.
func (c *Client) Detect(ctx context.Context, bucket, key string) (*textract.GetDocumentTextDetectionOutput, error) {
	jobID, err := c.Start(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return c.Wait(ctx, jobID)
}

func (c *Client) collectPages(ctx context.Context, jobID string, first *textract.GetDocumentTextDetectionOutput) (*textract.GetDocumentTextDetectionOutput, error) {
	next := first.NextToken
	for next != nil && *next != "" {
		page, err := c.api.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId:     aws.String(jobID),
			NextToken: next,
		})
		if err != nil {
			return nil, fmt.Errorf("get job %s page: %w", jobID, awsx.ClassifyCredentialError(err))
		}
		first.Blocks = append(first.Blocks, page.Blocks...)
		first.Warnings = append(first.Warnings, page.Warnings...)
		next = page.NextToken
	}
	first.NextToken = nil
	return first, nil
}
