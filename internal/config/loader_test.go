package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "empty config",
			cfg:     Config{},
			wantErr: false,
		},
		{
			name:    "valid postgres",
			cfg:     Config{Target: &TargetConfig{Dialect: "postgres"}},
			wantErr: false,
		},
		{
			name:    "valid postgres uppercase",
			cfg:     Config{Target: &TargetConfig{Dialect: "Postgres"}},
			wantErr: false,
		},
		{
			name:      "unknown dialect",
			cfg:       Config{Target: &TargetConfig{Dialect: "oracle"}},
			wantErr:   true,
			errSubstr: "unknown dialect",
		},
		{
			name:    "valid snake_case naming",
			cfg:     Config{Naming: &NamingConfig{Strategy: "snake_case"}},
			wantErr: false,
		},
		{
			name:      "unknown naming strategy",
			cfg:       Config{Naming: &NamingConfig{Strategy: "camel"}},
			wantErr:   true,
			errSubstr: "unknown naming strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateErrorListsAvailable(t *testing.T) {
	cfg := Config{Target: &TargetConfig{Dialect: "invalid_db"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available:")
	assert.Contains(t, err.Error(), "postgres")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	chdirForTest(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultMappingsDir, filepath.Base(cfg.MappingsDir))
	assert.Equal(t, DefaultDialect, cfg.DialectName())
	assert.Equal(t, DefaultNamingStrategy, cfg.NamingStrategyName())
}

func TestLoadConfig_File(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()

	content := `mappings_dir: entities
output: json
target:
  dialect: postgres
  schema: sales
naming:
  strategy: snake_case
`
	cfgFile := filepath.Join(dir, "mapbind.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))

	cfg, err := LoadConfig(cfgFile, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, filepath.Join(dir, "entities"), cfg.MappingsDir)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "postgres", cfg.Target.Dialect)
	assert.Equal(t, "sales", cfg.Target.Schema)
	require.NotNil(t, cfg.Naming)
	assert.Equal(t, "snake_case", cfg.Naming.Strategy)
	assert.Equal(t, cfgFile, ConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "mapbind.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("output: table\n"), 0o644))

	t.Setenv("MAPBIND_OUTPUT", "json")

	cfg, err := LoadConfig(cfgFile, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	chdirForTest(t, t.TempDir())
	t.Setenv("MAPBIND_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("dialect", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "table", "--dialect", "mysql"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "mysql", cfg.Target.Dialect)
}

func TestLoadConfig_UnknownDialectFails(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "mapbind.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("target:\n  dialect: oracle\n"), 0o644))

	_, err := LoadConfig(cfgFile, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestTargetConfig_IdentifierParams(t *testing.T) {
	target := &TargetConfig{
		Dialect: "ansi",
		Params: map[string]any{
			"quote":         "[",
			"quote_end":     "]",
			"normalization": "uppercase",
		},
	}

	params, err := target.IdentifierParams()
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, "[", params.Quote)
	assert.Equal(t, "]", params.QuoteEnd)
	assert.Equal(t, "uppercase", params.Normalization)
}

func TestTargetConfig_IdentifierParams_Empty(t *testing.T) {
	target := &TargetConfig{Dialect: "ansi"}
	params, err := target.IdentifierParams()
	require.NoError(t, err)
	assert.Nil(t, params)
}

// chdirForTest changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (added in Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}
