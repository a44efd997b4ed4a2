package console

import (
	"context"
	"time"
)

// Run alternates Iterate with the configured loop delay until the Exit
// action or ctx is done. The delay is the only point where the loop yields;
// cancellation is only observed between iterations.
func (c *Controller) Run(ctx context.Context) error {
	delay := c.cfg.LoopDelay
	if delay <= 0 {
		delay = DefaultLoopDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !c.Iterate() {
			return nil
		}

		timer.Reset(delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// EnterLoop creates a controller for cfg and runs it until exit.
func EnterLoop(ctx context.Context, cfg Config, display Display, input Input, observers ...Observer) error {
	c, err := New(cfg, display, input)
	if err != nil {
		return err
	}
	for _, o := range observers {
		c.AddObserver(o)
	}
	return c.Run(ctx)
}

// Launch starts the session for the selected game.
func Launch(ctx context.Context, game Game, cfg Config, display Display, input Input, observers ...Observer) error {
	switch game {
	case GameOfLife:
		return EnterLoop(ctx, cfg, display, input, observers...)
	}
	return ErrUnknownGame
}
