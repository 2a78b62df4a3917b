// Package storage guarda imágenes y documentos en S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
)

var _ ports.BlobStore = (*S3Store)(nil)

// ObjectAPI subconjunto del cliente S3 que usa el store.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store implementa ports.BlobStore.
type S3Store struct {
	api        ObjectAPI
	bucket     string
	region     string
	publicBase string
	log        zerolog.Logger
}

// NewS3Store carga credenciales con la cadena por defecto del SDK (env, perfil, rol).
func NewS3Store(ctx context.Context, bucket, region, publicBaseURL string, log zerolog.Logger) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: S3_BUCKET no configurado")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: cargar configuración AWS: %w", err)
	}
	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, region, publicBaseURL, log), nil
}

// NewS3StoreWithClient permite inyectar el cliente (pruebas, endpoints compatibles).
func NewS3StoreWithClient(api ObjectAPI, bucket, region, publicBaseURL string, log zerolog.Logger) *S3Store {
	return &S3Store{
		api:        api,
		bucket:     bucket,
		region:     region,
		publicBase: strings.TrimSuffix(publicBaseURL, "/"),
		log:        log.With().Str("component", "s3").Logger(),
	}
}

// Put sube el objeto y devuelve su URL pública.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int64("size", size).Msg("objeto subido")
	return s.URL(key), nil
}

// Delete elimina el objeto. Borrar una clave inexistente no es error en S3.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}

// URL pública de una clave: base configurada (CDN) o la URL virtual-hosted de S3.
func (s *S3Store) URL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if s.publicBase != "" {
		return s.publicBase + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}
