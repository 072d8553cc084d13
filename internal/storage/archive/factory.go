// internal/storage/archive/factory.go
package archive

import (
	"fmt"

	"github.com/stockscope/stockscope/internal/config"
)

// New creates an archive backend from configuration. An empty type means
// local files under ./reports.
func New(cfg config.ArchiveConfig) (Storage, error) {
	switch cfg.Type {
	case "", "localfs":
		path := cfg.Path
		if path == "" {
			path = "reports"
		}
		return NewLocalFS(path)
	case "s3":
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
