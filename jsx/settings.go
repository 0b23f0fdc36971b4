package jsx

import (
	"fmt"
)

const (
	DefaultPragma      = "Inferno"
	DefaultCreateClass = "createClass"
)

// Settings are shared by every rule. Pragma is the name of the framework's namespace
// object and CreateClass the name of its ES5 component factory.
type Settings struct {
	Pragma      string `yaml:"pragma" json:"pragma"`
	CreateClass string `yaml:"createClass" json:"createClass"`
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{Pragma: DefaultPragma, CreateClass: DefaultCreateClass}
}

func (s Settings) withDefaults() Settings {
	if s.Pragma == "" {
		s.Pragma = DefaultPragma
	}
	if s.CreateClass == "" {
		s.CreateClass = DefaultCreateClass
	}
	return s
}

// SettingsFromMap reads settings from the untyped settings section of a config file.
// Unknown keys are left for other consumers.
func SettingsFromMap(m map[string]any) (Settings, error) {
	s := DefaultSettings()
	for key, dst := range map[string]*string{"pragma": &s.Pragma, "createClass": &s.CreateClass} {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return Settings{}, fmt.Errorf("setting %q must be a string, got %T", key, v)
		}
		if str != "" {
			*dst = str
		}
	}
	return s, nil
}
