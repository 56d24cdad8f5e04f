package app

import (
	"context"
	"net/http"

	"github.com/chaseflorell/seqguid/internal/pkg/pkgconfig"
	"github.com/chaseflorell/seqguid/internal/pkg/pkglog"
	"github.com/chaseflorell/seqguid/internal/pkg/pkgrouter"
	"github.com/chaseflorell/seqguid/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	guid *pkguid.Sequential

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
