package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	"github.com/drakeaxelrod/yxa/host"
	"github.com/drakeaxelrod/yxa/internal/configpaths"
	"github.com/drakeaxelrod/yxa/internal/log"
	"github.com/drakeaxelrod/yxa/internal/server"
	"github.com/drakeaxelrod/yxa/internal/server/auth"
)

const keyFileName = "bridge.key.txt"

// Serve bridges a connected keyboard to TCP subscribers.
type Serve struct {
	Bridge server.Config `embed:"" prefix:"bridge."`
	Device string        `help:"hidraw device path; auto-detected when empty" env:"YXA_DEVICE"`
}

// Run is called by kong when the serve command is executed.
func (c *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.serve(ctx, logger, rawLogger)
}

func (c *Serve) serve(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if err := c.resolveKey(logger); err != nil {
		return err
	}

	devPath := c.Device
	if devPath == "" {
		found, err := host.FindKeyboard()
		if err != nil {
			return err
		}
		devPath = found
	}
	dev, err := os.OpenFile(devPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open device %s: %w", devPath, err)
	}
	defer dev.Close()
	logger.Info("attached to keyboard", "device", devPath)

	src := server.NewDeviceSource(dev, logger)
	go src.Run()

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

	select {
	case <-ctx.Done():
		_ = srv.Close()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

// resolveKey handles the "auto" key mode: a key is generated on first run,
// persisted in the config dir and reused afterwards.
func (c *Serve) resolveKey(logger *slog.Logger) error {
	if c.Bridge.Key != "auto" {
		return nil
	}
	dir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return fmt.Errorf("resolve key file path: %w", err)
	}
	keyPath := path.Join(dir, keyFileName)
	if data, err := os.ReadFile(keyPath); err == nil {
		c.Bridge.Key = strings.TrimSpace(string(data))
		return nil
	}
	key, err := auth.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate bridge key: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(key), 0o600); err != nil {
		return fmt.Errorf("write bridge key: %w", err)
	}
	c.Bridge.Key = key
	logger.Info("generated bridge key", "path", keyPath)
	return nil
}
