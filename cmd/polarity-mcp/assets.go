package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/polarity-mcp/internal/offline"
)

func newAssetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "Install the offline asset cache and drop stale versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := a.log.WithField("component", "offline")

			storage := offline.NewStorage(a.cfg.CacheSize)
			w, err := offline.NewWorker(a.cfg.CacheName, a.cfg.AssetBase, offline.DefaultAssets, storage, log)
			if err != nil {
				return err
			}
			if err := w.Install(ctx); err != nil {
				return err
			}
			deleted, err := w.Activate(ctx)
			if err != nil {
				return err
			}

			cache, err := storage.Open(a.cfg.CacheName)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"cache":   a.cfg.CacheName,
				"keys":    cache.Keys(),
				"deleted": deleted,
			}).Info("Offline cache ready")
			return nil
		},
	}
}
