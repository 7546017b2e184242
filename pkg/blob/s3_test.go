package blob_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/pkg/blob"
)

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *mockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func newS3(t *testing.T, client *mockS3Client) *blob.S3 {
	t.Helper()
	store, err := blob.NewS3(context.Background(), blob.S3Config{Bucket: "forms", Region: "us-east-1"}, blob.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func TestNewS3_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := blob.NewS3(context.Background(), blob.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, blob.ErrInvalidConfig)
}

func TestS3_Put(t *testing.T) {
	t.Parallel()

	client := &mockS3Client{}
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "forms" &&
			*in.Key == "registrations/a.json" &&
			*in.ContentType == "application/json" &&
			*in.ContentLength == 2
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	store := newS3(t, client)
	require.NoError(t, store.Put(context.Background(), "registrations/a.json", []byte("{}"), "application/json"))
	client.AssertExpectations(t)
}

func TestS3_Get(t *testing.T) {
	t.Parallel()

	client := &mockS3Client{}
	client.On("GetObject", mock.Anything, mock.Anything).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("data"))}, nil).Once()
	client.On("GetObject", mock.Anything, mock.Anything).
		Return(nil, &types.NoSuchKey{}).Once()

	store := newS3(t, client)
	data, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestS3_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no bucket", err: &types.NoSuchBucket{}, want: blob.ErrBucketNotFound},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: blob.ErrAccessDenied},
		{name: "slow down", err: &smithy.GenericAPIError{Code: "SlowDown"}, want: blob.ErrServiceUnavailable},
		{name: "timeout", err: context.DeadlineExceeded, want: blob.ErrOperationTimeout},
		{name: "canceled", err: context.Canceled, want: blob.ErrOperationCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &mockS3Client{}
			client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, tt.err)
			err := newS3(t, client).Ping(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown api error keeps cause", func(t *testing.T) {
		t.Parallel()
		cause := &smithy.GenericAPIError{Code: "Weird"}
		client := &mockS3Client{}
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, cause)
		err := newS3(t, client).Ping(context.Background())
		var apiErr smithy.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Weird", apiErr.ErrorCode())
	})
}
