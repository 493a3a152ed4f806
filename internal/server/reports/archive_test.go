package reports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/bloglist/internal/server/config"
	"github.com/dmitrijs2005/bloglist/internal/server/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchiver() *Archiver {
	a := NewArchiver(&sc.Config{
		S3AccessKey:     "minioadmin",
		S3SecretKey:     "minioadmin",
		S3Bucket:        "bloglist",
		S3Region:        "eu-north-1",
		S3BaseEndpoint:  "http://127.0.0.1:9000",
		ReportURLExpiry: 5 * time.Minute,
	})
	a.now = func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }
	return a
}

// stubS3 replaces every S3 seam and restores them when the test ends.
func stubS3(t *testing.T) {
	t.Helper()
	origLoad, origNew, origPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNew, origPre
		putObject, presignGetObject = origPut, origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-north-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func TestStorageKey(t *testing.T) {
	key := StorageKey(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^reports/2024/3/7/[0-9a-f-]{36}\.json$`), key)
	assert.NotEqual(t, key, StorageKey(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)))
}

func TestStore_UploadsAndPresigns(t *testing.T) {
	stubS3(t)

	var uploaded Snapshot
	var putKey string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		assert.Equal(t, "bloglist", *in.Bucket)
		assert.Equal(t, "application/json", *in.ContentType)
		putKey = *in.Key
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &uploaded))
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 5*time.Minute, po.Expires)
		assert.Equal(t, putKey, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/bloglist/" + *in.Key + "?X-Amz-Signature=abc"}, nil
	}

	report := stats.Report{TotalLikes: 12, MostLikedAuthor: &stats.AuthorLikes{Author: "A", Likes: 12}}
	got, err := newArchiver().Store(context.Background(), Snapshot{PostCount: 2, Report: report})
	require.NoError(t, err)

	assert.Equal(t, putKey, got.Key)
	assert.Contains(t, got.Key, "reports/2024/3/7/")
	assert.Contains(t, got.URL, "X-Amz-Signature")
	assert.Equal(t, 2, uploaded.PostCount)
	assert.Equal(t, 12, uploaded.Report.TotalLikes)
	assert.True(t, uploaded.GeneratedAt.Equal(time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)))
}

func TestStore_Errors(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		stubS3(t)
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("load-fail")
		}

		_, err := newArchiver().Store(context.Background(), Snapshot{})
		require.EqualError(t, err, "load-fail")
	})

	t.Run("upload", func(t *testing.T) {
		stubS3(t)
		putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("put-fail")
		}

		_, err := newArchiver().Store(context.Background(), Snapshot{})
		require.ErrorContains(t, err, "upload snapshot: put-fail")
	})

	t.Run("presign", func(t *testing.T) {
		stubS3(t)
		putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return &s3.PutObjectOutput{}, nil
		}
		presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
			return nil, errors.New("presign-fail")
		}

		_, err := newArchiver().Store(context.Background(), Snapshot{})
		require.ErrorContains(t, err, "presign snapshot: presign-fail")
	})
}
