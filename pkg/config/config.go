package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
)

// Source tells where the current value of a setting came from.
type Source byte

const (
	SourceDefault Source = iota
	SourceFile
	SourceEnv
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	}
	return "default"
}

type Validator interface {
	Validate() error
}

// Config mirrors a settings struct as a tree of properties.
// Precedence: environment > user file > `default` tag.
type Config struct {
	Ptr    reflect.Value
	Source Source
	name   string
	tag    reflect.StructTag
	props  map[string]*Config
	order  []*Config
}

var (
	durationType    = reflect.TypeOf(time.Duration(0))
	regexPureNumber = regexp.MustCompile(`^\d+$`)
)

func (config *Config) child(name string) *Config {
	if config.props == nil {
		config.props = make(map[string]*Config)
	}
	if v, ok := config.props[name]; ok {
		return v
	}
	v := &Config{name: name}
	config.props[name] = v
	config.order = append(config.order, v)
	return v
}

// Lookup finds a property by its dotted lower case path, e.g. "record.fps".
func (config *Config) Lookup(path string) *Config {
	node := config
	for _, name := range strings.Split(strings.ToLower(path), ".") {
		if node = node.props[name]; node == nil {
			return nil
		}
	}
	return node
}

func (config *Config) Description() string {
	return config.tag.Get("desc")
}

// Parse applies the `default` tags of s and environment overrides named
// PREFIX_FIELD_SUBFIELD.
func (config *Config) Parse(s any, prefix ...string) error {
	v, ok := s.(reflect.Value)
	if !ok {
		defaults.SetDefaults(s)
		v = reflect.ValueOf(s)
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	config.Ptr = v
	var errs []error
	if len(prefix) > 1 {
		if envValue, found := os.LookupEnv(strings.Join(prefix, "_")); found {
			if ev, err := config.assign(envValue); err != nil {
				errs = append(errs, fmt.Errorf("env %s: %w", strings.Join(prefix, "_"), err))
			} else {
				v.Set(ev)
				config.Source = SourceEnv
			}
		}
	}
	if t := v.Type(); t.Kind() == reflect.Struct && t != durationType {
		for i := range t.NumField() {
			ft := t.Field(i)
			if !ft.IsExported() {
				continue
			}
			name := strings.ToLower(ft.Name)
			if tag := ft.Tag.Get("yaml"); tag != "" {
				if tag == "-" {
					continue
				}
				name, _, _ = strings.Cut(tag, ",")
			}
			prop := config.child(name)
			prop.tag = ft.Tag
			errs = append(errs, prop.Parse(v.Field(i), append(prefix, strings.ToUpper(ft.Name))...))
		}
	}
	return errors.Join(errs...)
}

// ParseUserFile applies the user configuration file. Environment values win.
func (config *Config) ParseUserFile(conf map[string]any) error {
	var errs []error
	for k, v := range conf {
		prop := config.props[strings.ToLower(k)]
		if prop == nil {
			slog.Warn("unknown config key", "key", k)
			continue
		}
		if prop.props != nil {
			if m, ok := v.(map[string]any); ok {
				errs = append(errs, prop.ParseUserFile(m))
			} else {
				errs = append(errs, fmt.Errorf("%s: want a mapping, got %v", k, v))
			}
			continue
		}
		if prop.Source == SourceEnv {
			continue
		}
		fv, err := prop.assign(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			continue
		}
		prop.Ptr.Set(fv)
		prop.Source = SourceFile
	}
	return errors.Join(errs...)
}

// GetMap returns the current values keyed like the YAML file.
func (config *Config) GetMap() map[string]any {
	m := make(map[string]any, len(config.order))
	for _, prop := range config.order {
		if prop.props != nil {
			m[prop.name] = prop.GetMap()
		} else {
			m[prop.name] = prop.Ptr.Interface()
		}
	}
	return m
}

// assign converts a raw value from the environment or the file into the
// property's type.
func (config *Config) assign(v any) (target reflect.Value, err error) {
	ft := config.Ptr.Type()
	target = reflect.New(ft).Elem()
	if ft == durationType {
		if d, ok := v.(time.Duration); ok {
			target.SetInt(int64(d))
			return
		}
		s := fmt.Sprint(v)
		if regexPureNumber.MatchString(s) {
			return target, fmt.Errorf("duration %q needs a unit (ms, s, m, h)", s)
		}
		var d time.Duration
		if d, err = time.ParseDuration(s); err == nil {
			target.SetInt(int64(d))
		}
		return
	}
	if s, isString := v.(string); isString && ft.Kind() == reflect.String {
		target.SetString(s)
		return
	}
	var out []byte
	if s, isString := v.(string); isString {
		out = []byte(s)
	} else if out, err = yaml.Marshal(v); err != nil {
		return
	}
	err = yaml.Unmarshal(out, target.Addr().Interface())
	return
}

// Load fills target from its defaults, the environment and the YAML file at
// path, then validates it. A missing file is not an error.
func Load(target any, path string, envPrefix string) (*Config, error) {
	var c Config
	if err := c.Parse(target, envPrefix); err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			var conf map[string]any
			if err = yaml.Unmarshal(data, &conf); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			if err = c.ParseUserFile(conf); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	if v, ok := target.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
