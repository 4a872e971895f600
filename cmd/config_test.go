package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "tracehook", configBaseName)
	assert.Equal(t, "tracehook.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "hooks", hooksFlagName)
	assert.Equal(t, "hooks.file", hooksFileKey)
	assert.Equal(t, "package.module_patterns", modulePatternsKey)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "repack.strip_signatures", stripSignaturesKey)
	assert.Equal(t, "deploy.adb", deployADBKey)
	assert.Equal(t, "deploy.device", deployDeviceKey)
	assert.Equal(t, "TRACEHOOK", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, []string{"assemblies/*.dll"}, viper.GetStringSlice(modulePatternsKey))
	assert.Equal(t, defaultRunParallel, viper.GetInt(runParallelConfigKey))
	assert.True(t, viper.GetBool(stripSignaturesKey))
	assert.Equal(t, "adb", viper.GetString(deployADBKey))
	assert.Equal(t, defaultLogFilename, viper.GetString(logFilenameKey))
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("TRACEHOOK_RUN_PARALLEL", "9")
	t.Setenv("TRACEHOOK_REPACK_STRIP_SIGNATURES", "false")

	assert.Equal(t, 9, viper.GetInt(runParallelConfigKey))
	assert.False(t, viper.GetBool(stripSignaturesKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}
