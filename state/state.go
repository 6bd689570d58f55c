// Package state wires the five stores of the order client to one gateway,
// one credential keeper and one logger. The container is constructed
// explicitly at startup and injected into the UI layer; there is no
// ambient global state.
package state

import (
	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/credentials"
	"github.com/stellarburgers/orderclient/pkg/logger"
	"github.com/stellarburgers/orderclient/state/build"
	"github.com/stellarburgers/orderclient/state/catalog"
	"github.com/stellarburgers/orderclient/state/feed"
	"github.com/stellarburgers/orderclient/state/order"
	"github.com/stellarburgers/orderclient/state/session"
)

// Container holds the stores of one client session.
type Container struct {
	Catalog *catalog.Store
	Build   *build.Store
	Order   *order.Store
	Feed    *feed.Store
	Session *session.Store
}

// New builds a container over the given gateway and credential keeper.
// A nil logger gets per-store defaults.
func New(gw *client.Client, creds *credentials.Keeper, log *logger.Logger) *Container {
	scoped := func(module string) *logger.Logger {
		if log == nil {
			return nil
		}
		return log.WithField("store", module)
	}

	return &Container{
		Catalog: catalog.New(gw, scoped("catalog")),
		Build:   build.New(),
		Order:   order.New(gw, scoped("order")),
		Feed:    feed.New(gw, scoped("feed")),
		Session: session.New(gw, creds, scoped("session")),
	}
}
