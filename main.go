// main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"FF7Ultima/addresses"
	"FF7Ultima/config"
	"FF7Ultima/memory"
	"FF7Ultima/process"
	"FF7Ultima/types"
	"FF7Ultima/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("settings.yaml")
	if err != nil {
		utils.Log.Fatalf("Failed to load configuration: %v", err)
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	utils.InitializeAppLog(level, cfg.LogFormat)
	utils.Log.Info("Application started.")
	utils.Log.Debugf("Configuration loaded: %+v", cfg)

	table, err := loadAddresses(cfg)
	if err != nil {
		utils.Log.Fatalf("Failed to load addresses: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locator := process.NewLocator(cfg.ProcessNames,
		process.WithPollInterval(cfg.PollInterval()),
		process.WithMinResidentMemory(cfg.MinResidentMemory),
	)
	locator.Start(ctx)
	defer locator.Stop()

	ff7 := utils.NewClassMemory(locator)
	w := &watcher{ctx: ctx, locator: locator, ff7: ff7, table: table}
	memory.Poll(ctx, ff7, table, cfg.RefreshInterval(), w.handle)

	utils.Log.Info("Shutting down.")
}

func loadAddresses(cfg *config.Settings) (*addresses.Table, error) {
	if cfg.AddressFile != "" {
		return addresses.Load(cfg.AddressFile)
	}
	return addresses.ForBuild(cfg.Build)
}

// watcher logs each snapshot and announces a newly attached game once.
type watcher struct {
	ctx     context.Context
	locator *process.Locator
	ff7     *utils.ClassMemory
	table   *addresses.Table

	attached uint32
}

func (w *watcher) handle(gd *types.GameData, err error) {
	if errors.Is(err, utils.ErrProcessNotFound) {
		w.attached = 0
		return
	}
	if err != nil {
		utils.IfError(err, "Failed to read game data")
		return
	}

	if pid, ok := w.locator.CurrentTarget(); ok && pid != w.attached {
		w.attached = pid
		w.announce(pid)
	}

	utils.Log.WithFields(logrus.Fields{
		"module": gd.Basic.Module().String(),
		"field":  gd.Basic.FieldID,
		"moment": gd.Basic.GameMoment,
		"gil":    gd.Basic.Gil,
	}).Info("Game state")

	if utils.Log.IsLevelEnabled(logrus.DebugLevel) {
		out, err := yaml.Marshal(gd)
		utils.IfError(err, "Failed to marshal game data")
		if err == nil {
			utils.Log.Debugf("Snapshot:\n%s", out)
		}
	}
}

func (w *watcher) announce(pid uint32) {
	entry := utils.Log.WithField("pid", pid)
	if dir, err := w.locator.Cwd(w.ctx); err == nil {
		entry = entry.WithField("dir", dir)
	}
	if items, err := memory.ReadItemNames(w.ff7, w.table); err == nil {
		entry = entry.WithField("items", len(items))
	}
	entry.Info("Attached to game")
}
