package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/drakeaxelrod/yxa/hid"
	"github.com/drakeaxelrod/yxa/host"
	"github.com/drakeaxelrod/yxa/internal/log"
	"github.com/drakeaxelrod/yxa/internal/server/auth"
)

// Watch subscribes to a bridge and prints keyboard state changes.
type Watch struct {
	Addr      string        `help:"Bridge address" default:"127.0.0.1:9049" env:"YXA_BRIDGE_ADDR"`
	Key       string        `help:"Pre-shared bridge key" env:"YXA_BRIDGE_KEY"`
	Heartbeat time.Duration `help:"Heartbeat interval; 0 disables" default:"5s"`
}

// Run is called by kong when the watch command is executed.
func (c *Watch) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := net.Dial("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("dial bridge %s: %w", c.Addr, err)
	}
	defer conn.Close()

	if c.Key != "" {
		authed, err := auth.ClientHandshake(conn, c.Key)
		if err != nil {
			return fmt.Errorf("bridge auth: %w", err)
		}
		conn = authed
	}
	logger.Info("connected to bridge", "addr", c.Addr)

	mon := host.NewMonitor(conn)
	if err := mon.RequestFullState(); err != nil {
		return fmt.Errorf("request full state: %w", err)
	}

	// Unblock the read loop on signal.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if c.Heartbeat > 0 {
		ticker := time.NewTicker(c.Heartbeat)
		defer ticker.Stop()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := mon.Heartbeat(); err != nil {
						return
					}
				}
			}
		}()
	}

	// On a terminal a live status line is refreshed in place; otherwise one
	// log line per event, pipe-friendly.
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for {
		events, err := mon.Next()
		if err != nil {
			if ctx.Err() != nil {
				if interactive {
					fmt.Println()
				}
				return nil
			}
			return fmt.Errorf("read bridge stream: %w", err)
		}
		for _, ev := range events {
			if interactive {
				fmt.Printf("\r\033[K[layer %d] caps=%v mods=0x%02x held=%d  %s",
					mon.Layer(), mon.CapsWordActive(), mon.Modifiers(),
					len(mon.Pressed()), describe(ev))
			} else {
				logger.Info("event", "desc", describe(ev),
					"layer", mon.Layer(), "caps", mon.CapsWordActive(),
					"mods", mon.Modifiers(), "held", len(mon.Pressed()))
			}
		}
	}
}

func describe(msg hid.Message) string {
	switch v := msg.(type) {
	case hid.LayerChanged:
		return fmt.Sprintf("layer -> %d", v.Layer)
	case hid.KeyPressed:
		return fmt.Sprintf("press (%d,%d)", v.Row, v.Col)
	case hid.KeyReleased:
		return fmt.Sprintf("release (%d,%d)", v.Row, v.Col)
	case hid.CapsWordChanged:
		return fmt.Sprintf("caps word -> %v", v.Active)
	case hid.ModifierChanged:
		return fmt.Sprintf("mods -> 0x%02x", v.Mask)
	case hid.FullState:
		return fmt.Sprintf("full state: layer=%d caps=%v mods=0x%02x", v.Layer, v.CapsWord, v.Modifiers)
	default:
		return fmt.Sprintf("%T", msg)
	}
}
