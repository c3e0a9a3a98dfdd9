package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"techblog/internal/config"
)

func TestCoverObjectName(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	name := CoverObjectName(7, ".png", now)
	assert.Regexp(t, regexp.MustCompile(`^posts/7/2024/03/[0-9a-f-]{36}\.png$`), name)

	assert.Regexp(t, regexp.MustCompile(`\.bin$`), CoverObjectName(7, "", now))
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIO
		want string
	}{
		{"plain endpoint", config.MinIO{Endpoint: "localhost:9000", BucketName: "covers"}, "http://localhost:9000/covers/a.png"},
		{"ssl endpoint", config.MinIO{Endpoint: "s3.local", BucketName: "covers", UseSSL: true}, "https://s3.local/covers/a.png"},
		{"public url", config.MinIO{Endpoint: "minio:9000", BucketName: "covers", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/covers/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectURL(tt.cfg, "a.png"))
		})
	}
}
