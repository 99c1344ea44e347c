package am

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/wikibase/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/wbapi/config.toml
	SourceUser        ConfigSource = "user"        // ~/.wbapi/config.toml
	SourceProject     ConfigSource = "project"     // wbapi.toml found upward from cwd
	SourceEnvironment ConfigSource = "environment" // WBAPI_* env vars
)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"` // File path or env var name
}

// ConfigIntrospection lists every effective setting with its origin
type ConfigIntrospection struct {
	Files    []string      `json:"files"` // Config files that were merged, lowest precedence first
	Settings []SettingInfo `json:"settings"`
}

// SourceInfo records the file a key was last merged from
type SourceInfo struct {
	Source ConfigSource
	Path   string
}

// ConfigSources maps dotted keys to the file that set them. Filled by
// mergeConfigFiles; keys absent here come from defaults or env vars.
var ConfigSources = map[string]SourceInfo{}

// loadedFiles lists merged config files in merge order
var loadedFiles []string

// sensitiveKeys are masked in introspection output
var sensitiveKeys = map[string]bool{
	"wikibase.password": true,
}

// GetConfigIntrospection reports every effective setting and where it came from
func GetConfigIntrospection() (*ConfigIntrospection, error) {
	v := GetViper()
	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}

	intro := &ConfigIntrospection{
		Files:    append([]string(nil), loadedFiles...),
		Settings: make([]SettingInfo, 0),
	}
	flattenSettingsWithSources(v.AllSettings(), "", intro, ConfigSources)
	return intro, nil
}

// flattenSettingsWithSources flattens nested settings in key order
func flattenSettingsWithSources(settings map[string]interface{}, prefix string, intro *ConfigIntrospection, sourceMap map[string]SourceInfo) {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := settings[key]
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]interface{}); ok {
			flattenSettingsWithSources(nested, fullKey, intro, sourceMap)
			continue
		}

		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sourceMap[fullKey]; ok {
			info = si
		}

		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(fullKey, ".", "_"))
		if os.Getenv(envKey) != "" {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		if sensitiveKeys[fullKey] && value != "" {
			value = "********"
		}

		intro.Settings = append(intro.Settings, SettingInfo{
			Key:        fullKey,
			Value:      value,
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
}

// classifySource decides which layer a config file belongs to
func classifySource(path string) ConfigSource {
	if strings.HasPrefix(path, "/etc/") {
		return SourceSystem
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if filepath.Dir(path) == filepath.Join(home, ".wbapi") {
			return SourceUser
		}
	}
	return SourceProject
}
