package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName    = "file_name"
	otelAttrBucket      = "bucket"
	otelAttrContentType = "content_type"

	sniffLength = 512
	region      = "auto"
)

// ErrUnsupportedContent is returned when an upload's bytes are not one of the
// accepted image types, whatever its declared header says.
var ErrUnsupportedContent = errors.New("unsupported file content")

var acceptedContent = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(directory, url string) (objectName string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

// UploadFile streams file to directory/fileName and returns its public URL.
// The content type is sniffed from the first bytes.
func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if bucketName == "" {
		bucketName = svc.Config.External.S3.BucketName
	}

	contentType, err := sniffContentType(file)
	if err != nil {
		return constant.Empty, err
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName:    fileName,
		otelAttrBucket:      bucketName,
		otelAttrContentType: contentType,
	})

	objectKey := path.Join(directory, fileName)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileHeader.Size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(objectKey), nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectName,
		otelAttrBucket:   bucketName,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(path.Join(directory, objectName)),
	})
	if err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// GetObjectNameFromURL strips the public domain or API endpoint prefix and the directory from url.
func (svc *s3Impl) GetObjectNameFromURL(directory, url string) (objectName string) {
	prefixes := []string{
		svc.Config.External.S3.PublicDomain + "/",
		fmt.Sprintf("%s/%s/", svc.Config.External.S3.APIEndpoint, svc.Config.External.S3.BucketName),
	}

	for _, prefix := range prefixes {
		if prefix == "/" {
			continue
		}

		if key, ok := strings.CutPrefix(url, prefix); ok {
			return path.Base(strings.TrimPrefix(key, directory+"/"))
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(objectKey string) string {
	joined, err := url.JoinPath(svc.Config.External.S3.PublicDomain, objectKey)
	if err != nil {
		return svc.Config.External.S3.PublicDomain + "/" + objectKey
	}

	return joined
}

// sniffContentType reads the leading bytes of file and rewinds it.
func sniffContentType(file io.ReadSeeker) (string, error) {
	head := make([]byte, sniffLength)

	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, fmt.Errorf("failed to rewind file: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	if !acceptedContent[contentType] {
		return constant.Empty, fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}

	return contentType, nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		constant.Empty,
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
