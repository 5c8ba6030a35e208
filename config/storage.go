package config

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/storage"
)

// NewImageUploader wires the configured image backend.
func NewImageUploader(cfg *Config) *storage.Uploader {
	var backend storage.ImageStore
	if cfg.ImageStorage == ImagesR2 {
		backend = storage.NewR2Store(cfg.R2)
	} else {
		backend = storage.NewLocalStore(cfg.StaticDir)
	}
	return storage.NewUploader(backend, cfg.MaxUploadBytes())
}
