package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/chaseflorell/seqguid/internal/seqid"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.seqid.enabled") {
		closer, err := seqid.New(seqid.Dependency{
			Config:    a.config,
			Router:    a.router,
			Generator: a.guid,
		})
		if err != nil {
			slog.Error("failed to init module seqid", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["SeqID"] = closer
		}
	}
}
