package cfg

import (
	"flag"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// GlobalOptions are options applied globally and set from the command line.
type GlobalOptions struct {
	LogLevel    string `yaml:"log_level" cli:"level"`
	ConfigFile  string `cli:"config"`
	ForceColors bool   `yaml:"force_colors" cli:"colors"`
}

// LoadFlags loads global options from the command line and module options
// from the YAML config file the command line points at. Command-line values
// win over file values for the global options.
func LoadFlags(moduleOptions interface{}, globalOptions *GlobalOptions) error {
	level := flag.String("level", "info", "log level (trace, debug, info, warn, error)")
	configFile := flag.String("config", "", "path to a YAML config file")
	colors := flag.Bool("colors", false, "force colored log output")

	flag.Parse()

	if *configFile != "" {
		configBytes, err := ioutil.ReadFile(*configFile)
		if err != nil {
			return errors.Wrap(err, "could not read config file")
		}

		if err := yaml.Unmarshal(configBytes, moduleOptions); err != nil {
			return errors.Wrap(err, "could not parse config file")
		}

		if err := yaml.Unmarshal(configBytes, globalOptions); err != nil {
			return errors.Wrap(err, "could not parse config file")
		}
	}

	globalOptions.ConfigFile = *configFile
	if isFlagSet("level") || globalOptions.LogLevel == "" {
		globalOptions.LogLevel = *level
	}
	if isFlagSet("colors") {
		globalOptions.ForceColors = *colors
	}

	return nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
