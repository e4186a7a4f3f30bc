// Package s3 предоставляет функционал для обмена снимками расписания с Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// UploaderAPI часть s3manager.Uploader, используемая клиентом
type UploaderAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// DownloaderAPI часть s3manager.Downloader, используемая клиентом
type DownloaderAPI interface {
	DownloadWithContext(ctx aws.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*s3manager.Downloader)) (int64, error)
}

// ObjectAPI часть s3.S3, используемая клиентом
type ObjectAPI interface {
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Client обертка над S3 для загрузки, скачивания и удаления объектов
type Client struct {
	uploader   UploaderAPI
	downloader DownloaderAPI
	objects    ObjectAPI
	config     *Config
}

// NewClient создает новый S3 клиент
func NewClient(config *Config) (*Client, error) {
	if config.BucketName == "" {
		return nil, fmt.Errorf("не указан bucket S3")
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return NewClientWithAPI(config, s3manager.NewUploader(sess), s3manager.NewDownloader(sess), s3.New(sess)), nil
}

// NewClientWithAPI создает клиент поверх готовых реализаций API
func NewClientWithAPI(config *Config, uploader UploaderAPI, downloader DownloaderAPI, objects ObjectAPI) *Client {
	return &Client{
		uploader:   uploader,
		downloader: downloader,
		objects:    objects,
		config:     config,
	}
}

// UploadFile загружает данные в S3 и возвращает URL объекта
func (c *Client) UploadFile(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	// Формируем URL файла
	url := fmt.Sprintf("%s/%s/%s", c.config.Endpoint, c.config.BucketName, key)
	return url, nil
}

// DownloadFile скачивает объект целиком в память
func (c *Client) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	buf := aws.NewWriteAtBuffer(nil)
	_, err := c.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка скачивания %s из S3: %w", key, err)
	}
	return buf.Bytes(), nil
}

// DeleteFile удаляет файл из S3
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.objects.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}
