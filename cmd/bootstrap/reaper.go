package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"slotbooking/internal/pkg/config"
	"slotbooking/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReaperModule = fx.Module("reaper",
	fx.Invoke(StartReaper),
)

// StartReaper runs the expiry sweep on a fixed interval for the lifetime of
// the application. Abandoned holds are returned to the pool even when no
// failure callback ever arrives for them.
func StartReaper(lc fx.Lifecycle, cfg config.Config, reaper commands.ReaperCommands) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Reaper.Interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						released, err := reaper.ReleaseExpiredHolds(ctx, cfg.Reaper.BatchSize)
						if err != nil {
							slog.Error("expiry sweep failed", "error", err)
							continue
						}
						if released > 0 {
							slog.Info("expiry sweep released slots", "count", released)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
