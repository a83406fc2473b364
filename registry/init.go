package registry

import (
	"context"
	"path/filepath"

	"github.com/caffeine-storm/isoroom/base"
	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/logging"
)

func FurnitureDir() string {
	return filepath.Join(base.GetDataDir(), "furniture")
}

func RoomsDir() string {
	return filepath.Join(base.GetDataDir(), "rooms")
}

// Loads every registry out of the data directory set with base.SetDatadir.
func LoadAllRegistries() error {
	return house.LoadAllFurnitureInDir(FurnitureDir())
}

// Reloads the furniture registry whenever a def in the furniture directory
// changes, then calls onReload with the result of the reload. Runs until ctx
// is done.
func WatchFurniture(ctx context.Context, onReload func(error)) error {
	return WatchFurnitureDir(ctx, FurnitureDir(), onReload)
}

func WatchFurnitureDir(ctx context.Context, dir string, onReload func(error)) error {
	dw, err := base.WatchDirs(".json", dir)
	if err != nil {
		return err
	}
	defer dw.Close()

	logging.Info("watching furniture", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name, ok := <-dw.Events:
			if !ok {
				return nil
			}
			logging.Info("furniture changed, reloading", "file", name)
			onReload(house.LoadAllFurnitureInDir(dir))
		case err, ok := <-dw.Errors:
			if !ok {
				return nil
			}
			logging.Warn("furniture watcher", "err", err)
		}
	}
}
