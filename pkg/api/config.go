package api

import "time"

// Config configures the HTTP server.
//
// The HTTP side of the service carries the client bootstrap endpoints
// under /appsvc (connection point discovery and account registration)
// plus the landing page, health probes, and Prometheus metrics.
type Config struct {
	// Bind is the local address the listener binds to.
	// Default: "0.0.0.0"
	Bind string `mapstructure:"bind" yaml:"bind"`

	// Port is the HTTP port. Stock GG 6.0 clients fetch the connection
	// point over plain HTTP on the well known port, so anything other
	// than 80 needs a redirect in front of the server.
	// Default: 80
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means there is no timeout.
	// Default: 10s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// A zero or negative value means there is no timeout.
	// Default: 10s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If zero, the value of ReadTimeout is used.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// Hostname is the public name clients reach this server under. It
	// is embedded in the token image URL handed out by regtoken.asp,
	// so it must resolve from the client side.
	// Default: "gg-retro.local"
	Hostname string `mapstructure:"hostname" yaml:"hostname"`

	// GGPort is the messaging port advertised by the connection point
	// endpoint.
	// Default: 8074
	GGPort int `mapstructure:"gg_port" validate:"omitempty,min=1,max=65535" yaml:"gg_port"`

	// HostIP is the address advertised to clients by appmsg4.asp. When
	// empty, the preferred outbound address is resolved at startup.
	HostIP string `mapstructure:"host_ip" yaml:"host_ip"`

	// Version is displayed on the landing page. Set from build
	// information, not from configuration files.
	Version string `mapstructure:"-" yaml:"-"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Bind == "" {
		c.Bind = "0.0.0.0"
	}
	if c.Port <= 0 {
		c.Port = 80
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.Hostname == "" {
		c.Hostname = "gg-retro.local"
	}
	if c.GGPort <= 0 {
		c.GGPort = 8074
	}
	if c.Version == "" {
		c.Version = "dev"
	}
}
