// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/business/web/mid"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	State  *state.State
	NS     *nameservice.NameService
	Evts   *events.Events
	Origin string
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	cors := mid.Cors(cfg.Origin)

	app.Handle(http.MethodGet, version, "/events", lgh.Events)
	app.Handle(http.MethodGet, version, "/genesis", lgh.Genesis, cors)
	app.Handle(http.MethodGet, version, "/balances/list", lgh.Balances, cors)
	app.Handle(http.MethodGet, version, "/wallets/:index/balance", lgh.Balance, cors)
	app.Handle(http.MethodGet, version, "/blocks/:num", lgh.Block, cors)
	app.Handle(http.MethodGet, version, "/blocks/:num/verify/:index", lgh.VerifyBlock, cors)
	app.Handle(http.MethodPost, version, "/tx/verify", lgh.VerifyTransaction, cors)
}
