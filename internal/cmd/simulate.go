package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drakeaxelrod/yxa/broadcast"
	"github.com/drakeaxelrod/yxa/hid"
	"github.com/drakeaxelrod/yxa/internal/log"
	"github.com/drakeaxelrod/yxa/internal/server"
	"github.com/drakeaxelrod/yxa/keyboard"
)

// Simulate runs a scripted keyboard through the broadcast engine and serves
// the resulting frame stream like a real device. Useful for developing
// overlay clients without hardware.
type Simulate struct {
	Bridge       server.Config    `embed:"" prefix:"bridge."`
	Engine       broadcast.Config `embed:"" prefix:"engine."`
	TickInterval time.Duration    `help:"Scheduler tick interval" default:"1ms"`
}

// Run is called by kong when the simulate command is executed.
func (c *Simulate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := keyboard.NewState()
	src := server.NewSessionSource(c.Engine, state)
	defer src.Close()

	srv := server.New(c.Bridge, src, logger, rawLogger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-srv.Ready():
	}
	logger.Info("simulated keyboard running", "tick", c.TickInterval.String())

	ticker := time.NewTicker(c.TickInterval)
	defer ticker.Stop()
	start := time.Now()

	script := demoScript(src, state)
	idx := 0
	var cycleStart uint32

	for {
		select {
		case <-ctx.Done():
			_ = srv.Close()
			<-errCh
			return nil
		case err := <-errCh:
			return err
		case <-ticker.C:
			now := uint32(time.Since(start).Milliseconds())
			for idx < len(script) && now-cycleStart >= script[idx].at {
				script[idx].fn(now)
				idx++
			}
			if idx == len(script) {
				idx = 0
				cycleStart = now
			}
			src.Tick(now)
		}
	}
}

type scriptStep struct {
	at uint32 // offset into the cycle, milliseconds
	fn func(now uint32)
}

// demoScript is one cycle of simulated activity: plain taps, an overlapping
// chord whose releases coalesce into one batch, a momentary layer, held and
// one-shot modifiers, and a Caps Word word.
func demoScript(src *server.SessionSource, state *keyboard.State) []scriptStep {
	press := func(row, col uint8) func(uint32) {
		return func(now uint32) { src.SubmitKeyEvent(hid.Press, row, col, now) }
	}
	release := func(row, col uint8) func(uint32) {
		return func(now uint32) { src.SubmitKeyEvent(hid.Release, row, col, now) }
	}
	mutate := func(fn func()) func(uint32) {
		return func(uint32) { src.Do(fn) }
	}

	return []scriptStep{
		// Single tap.
		{100, press(1, 3)},
		{180, release(1, 3)},

		// Overlapping chord; both releases land in one batch.
		{400, press(1, 4)},
		{440, press(1, 5)},
		{520, release(1, 4)},
		{522, release(1, 5)},

		// Momentary layer with a tap on it.
		{800, mutate(func() { state.MomentaryOn(3) })},
		{900, press(2, 5)},
		{960, release(2, 5)},
		{1100, mutate(func() { state.MomentaryOff(3) })},

		// Held shift.
		{1400, mutate(func() { state.HoldModifier(keyboard.ModLeftShift) })},
		{1500, press(1, 6)},
		{1560, release(1, 6)},
		{1700, mutate(func() { state.ReleaseModifier(keyboard.ModLeftShift) })},

		// One-shot shift consumed by the next key.
		{2000, mutate(func() { state.ArmOneShot(keyboard.ModLeftShift) })},
		{2100, press(1, 7)},
		{2100, mutate(func() { state.NotifyKey(keyboard.KeyA) })},
		{2160, release(1, 7)},

		// Caps Word: letters keep it alive, space ends it.
		{2400, mutate(func() { state.SetCapsWord(true) })},
		{2500, mutate(func() { state.NotifyKey(keyboard.KeyY) })},
		{2600, mutate(func() { state.NotifyKey(keyboard.KeyX) })},
		{2700, mutate(func() { state.NotifyKey(keyboard.KeySpace) })},

		{3000, func(uint32) {}},
	}
}
