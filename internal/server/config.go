package server

// Config is the bridge server configuration.
type Config struct {
	Addr         string `help:"Bridge listen address" default:"127.0.0.1:9049" env:"YXA_BRIDGE_ADDR"`
	Key          string `help:"Pre-shared client key; empty disables auth and encryption" env:"YXA_BRIDGE_KEY"`
	ClientBuffer int    `help:"Frames buffered per client before drops" default:"64" env:"YXA_BRIDGE_CLIENT_BUFFER"`
}
