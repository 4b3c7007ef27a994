package service

import (
	"movievault/internal/adapter"
	"movievault/internal/config"
	"movievault/internal/logger"
	"movievault/internal/store"
)

type Services struct {
	VaultService   VaultService
	CatalogService CatalogService
	TrendingJob    TrendingJob
}

func NewServices(storages *store.Storages, catalogAdapter adapter.CatalogAdapter, cfg config.Catalog, logger *logger.Logger) *Services {
	vaultSvc := NewVaultService(storages.Vault, logger)
	catalogSvc := NewCatalogService(catalogAdapter, cfg.SearchLimit, cfg.TrendingLimit, logger)

	return &Services{
		VaultService:   vaultSvc,
		CatalogService: catalogSvc,
		TrendingJob:    NewTrendingJob(catalogSvc),
	}
}
