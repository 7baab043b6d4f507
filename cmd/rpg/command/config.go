package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/game"
)

type Config struct {
	TickInterval string            `json:"tick_interval"`
	Listeners    []ListenerConfig  `json:"listeners"`
	Storage      StorageConfig     `json:"storage"`
	Nats         NatsConfig        `json:"nats"`
	Player       game.PlayerConfig `json:"player"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d <= 0 {
		el.Add(fmt.Errorf("tick_interval must be positive"))
	}

	for i, l := range c.Listeners {
		err := l.Validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Player.Validate())

	return el.Err()
}

// tickInterval is both the driver's wall-clock period and the simulated step
// each world tick advances.
func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return game.DefaultStep
	}
	return d
}
