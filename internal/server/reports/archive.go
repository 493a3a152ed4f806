// Package reports archives stats snapshots to an S3-compatible bucket and
// hands back a time-limited download link.
package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/bloglist/internal/server/config"
	"github.com/dmitrijs2005/bloglist/internal/server/stats"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Archive describes a stored snapshot.
type Archive struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Snapshot is the document written to the bucket.
type Snapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	PostCount   int          `json:"post_count"`
	Report      stats.Report `json:"report"`
}

type Archiver struct {
	config *sc.Config
	now    func() time.Time
}

func NewArchiver(config *sc.Config) *Archiver {
	return &Archiver{config: config, now: time.Now}
}

// StorageKey returns reports/YYYY/M/D/<uuid>.json for t.
func StorageKey(t time.Time) string {
	return fmt.Sprintf("reports/%d/%d/%d/%v.json", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (a *Archiver) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(a.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.config.S3AccessKey,
			a.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if a.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(a.config.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// Store uploads the snapshot as JSON and returns its key with a presigned
// GET URL valid for the configured expiry.
func (a *Archiver) Store(ctx context.Context, snap Snapshot) (*Archive, error) {
	if snap.GeneratedAt.IsZero() {
		snap.GeneratedAt = a.now().UTC()
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	key := StorageKey(snap.GeneratedAt)
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(a.config.ReportURLExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	return &Archive{Key: key, URL: req.URL}, nil
}
