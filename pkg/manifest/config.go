package manifest

// Config is the top-level manifest: the set of screen mounts a service
// exposes.
type Config struct {
	Mounts []Mount `toml:"mount"`
}

func (c *Config) Validate() error {
	return c.validateMounts()
}
