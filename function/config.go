package function

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type yamlFunctionConfig struct {
	Mode struct {
		Debug bool `yaml:"debug"`
	} `yaml:"mode"`
	Triggers []struct {
		Name     string   `yaml:"name"`
		Methods  []string `yaml:"methods"`
		Disabled bool     `yaml:"disabled"`
	} `yaml:"triggers"`
	Alias []struct {
		Src string `yaml:"src"`
		Dst string `yaml:"dst"`
	} `yaml:"alias"`
}

func optionFromFunctionConfig(cfg yamlFunctionConfig) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = cfg.Mode.Debug

		if o.MethodMap == nil {
			o.MethodMap = make(map[string][]string)
		}
		if o.DisabledMap == nil {
			o.DisabledMap = make(map[string]bool)
		}
		for _, t := range cfg.Triggers {
			if t.Name == "" {
				continue
			}
			if len(t.Methods) > 0 {
				o.MethodMap[t.Name] = normalizeMethods(t.Methods)
			}
			o.DisabledMap[t.Name] = t.Disabled
		}

		if o.AliasMap == nil {
			o.AliasMap = make(map[string]string)
		}
		for _, a := range cfg.Alias {
			if a.Src == "" || a.Dst == "" {
				continue
			}
			o.AliasMap[a.Src] = a.Dst
		}
	})
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlFunctionConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	return optionFromFunctionConfig(cfg), nil
}

// WithConfig parses YAML bytes following function.yml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("function.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("function.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}
