package config

import "flag"

// Flags holds command-line overrides of the configuration.
type Flags struct {
	Config  string
	Debug   bool
	Strict  bool
	LogFile string

	// Path to write the resulting configuration to.
	SavePath string
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := new(Flags)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Strict, "strict", false, "Decode only 1 as a true boolean")
	fs.StringVar(&f.LogFile, "log", "", "Path to a log file")
	fs.StringVar(&f.SavePath, "write-config", "", "Write the resulting config to a file and exit")
	return f
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Strict {
		cfg.Decoder.StrictBools = true
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
