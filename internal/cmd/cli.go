// Package cmd defines the yxa CLI commands.
package cmd

// LogConfig is the logging configuration shared by all commands.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"YXA_LOG_LEVEL"`
	File    string `help:"Log file path" env:"YXA_LOG_FILE"`
	RawFile string `help:"Raw frame log file path" env:"YXA_LOG_RAW_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log LogConfig `embed:"" prefix:"log."`

	ConfigFile string `name:"config" help:"Path to a config file" env:"YXA_CONFIG"`

	Serve    Serve         `cmd:"" help:"Bridge a connected keyboard's broadcast stream to local TCP subscribers"`
	Watch    Watch         `cmd:"" help:"Subscribe to a bridge and print keyboard state changes"`
	Simulate Simulate      `cmd:"" help:"Run a simulated keyboard through the broadcast engine and serve it"`
	Config   ConfigCommand `cmd:"" help:"Configuration utilities"`
}
