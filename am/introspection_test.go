package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func findSetting(t *testing.T, intro *ConfigIntrospection, key string) SettingInfo {
	t.Helper()
	for _, s := range intro.Settings {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("setting %q not reported", key)
	return SettingInfo{}
}

func TestIntrospection_Defaults(t *testing.T) {
	isolate(t)

	intro, err := GetConfigIntrospection()
	require.NoError(t, err)
	assert.Empty(t, intro.Files)

	endpoint := findSetting(t, intro, "wikibase.endpoint")
	assert.Equal(t, SourceDefault, endpoint.Source)
	assert.Equal(t, DefaultEndpoint, endpoint.Value)

	// sorted by key
	for i := 1; i < len(intro.Settings); i++ {
		assert.Less(t, intro.Settings[i-1].Key, intro.Settings[i].Key)
	}
}

func TestIntrospection_UserAndProjectSources(t *testing.T) {
	dir := isolate(t)

	userDir := filepath.Join(dir, ".wbapi")
	require.NoError(t, os.MkdirAll(userDir, DefaultDirPermissions))
	userFile := filepath.Join(userDir, "config.toml")
	require.NoError(t, os.WriteFile(userFile, []byte(`
[wikibase]
username = "UserBot"
maxlag = 7

[http]
timeout_seconds = 30
`), DefaultFilePermissions))

	projectFile := filepath.Join(dir, ProjectConfigName)
	require.NoError(t, os.WriteFile(projectFile, []byte(`
[wikibase]
maxlag = 2
`), DefaultFilePermissions))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Wikibase.Maxlag, "project config overrides user config")
	assert.Equal(t, "UserBot", cfg.Wikibase.Username)

	assert.Equal(t, SourceProject, ConfigSources["wikibase.maxlag"].Source)
	assert.Equal(t, SourceUser, ConfigSources["wikibase.username"].Source)
	assert.Equal(t, userFile, ConfigSources["http.timeout_seconds"].Path)

	intro, err := GetConfigIntrospection()
	require.NoError(t, err)
	assert.Equal(t, []string{userFile, projectFile}, intro.Files)
	assert.Equal(t, SourceProject, findSetting(t, intro, "wikibase.maxlag").Source)
	assert.Equal(t, SourceDefault, findSetting(t, intro, "http.max_redirects").Source)
}

func TestIntrospection_EnvironmentWins(t *testing.T) {
	isolate(t)
	t.Setenv("WBAPI_WIKIBASE_ENDPOINT", "https://test.wikidata.org/w/api.php")

	intro, err := GetConfigIntrospection()
	require.NoError(t, err)

	endpoint := findSetting(t, intro, "wikibase.endpoint")
	assert.Equal(t, SourceEnvironment, endpoint.Source)
	assert.Equal(t, "WBAPI_WIKIBASE_ENDPOINT", endpoint.SourcePath)
}

func TestIntrospection_PasswordMasked(t *testing.T) {
	isolate(t)
	t.Setenv("WBAPI_WIKIBASE_PASSWORD", "hunter2")

	intro, err := GetConfigIntrospection()
	require.NoError(t, err)

	pw := findSetting(t, intro, "wikibase.password")
	assert.Equal(t, "********", pw.Value)
	assert.Equal(t, SourceEnvironment, pw.Source)
}

func TestClassifySource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, SourceSystem, classifySource("/etc/wbapi/config.toml"))
	assert.Equal(t, SourceUser, classifySource(filepath.Join(home, ".wbapi", "config.toml")))
	assert.Equal(t, SourceProject, classifySource(filepath.Join(home, "work", ProjectConfigName)))
}
