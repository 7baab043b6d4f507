package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-rpg/internal/console"
	"github.com/pixil98/go-rpg/internal/driver"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/listener"
	"github.com/pixil98/go-rpg/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config any) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewNatsPublisher(natsServer)

	tick := cfg.tickInterval()
	world, err := game.NewWorld(dict, cfg.Player, publisher, game.WithStep(tick))
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	// Create Listeners
	handler := console.NewHandler(world)
	cm := listener.NewConnectionManager(console.NewConsole(handler, publisher))
	handler.SetRoster(cm)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lw, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d-%s", i, l.Protocol)] = lw
	}

	// Setup the driver
	d := driver.NewDriver([]driver.Ticker{world}, driver.WithTickLength(tick))

	// Events flow over nats, so nothing else starts until it is up
	return service.WorkerList{
		"nats":      natsServer,
		"driver":    &readyWorker{ready: natsServer.Ready(), worker: d},
		"listeners": &readyWorker{ready: natsServer.Ready(), worker: &listeners},
	}, nil
}

// readyWorker holds a worker back until ready is closed.
type readyWorker struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (w *readyWorker) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-w.ready:
	}
	return w.worker.Start(ctx)
}
