package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabels_NotOptedIn(t *testing.T) {
	tests := []struct {
		name   string
		labels map[string]string
	}{
		{"no labels", map[string]string{}},
		{"explicit false", map[string]string{LabelEnable: "false"}},
		{"garbage value", map[string]string{LabelEnable: "yes"}},
		{"type without enable", map[string]string{LabelType: "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ParseLabels(tt.labels)
			assert.False(t, cfg.Enabled)
			assert.False(t, cfg.HasWork())
		})
	}
}

func TestParseLabels_EnableIsCaseInsensitive(t *testing.T) {
	for _, val := range []string{"true", "TRUE", "True", "tRuE"} {
		cfg := ParseLabels(map[string]string{
			LabelEnable: val,
			LabelType:   "mysql",
		})
		assert.True(t, cfg.Enabled, "value %q should opt in", val)
		assert.Equal(t, "mysql", cfg.Kind)
	}
}

func TestParseLabels_DumpAndVolumeAreIndependent(t *testing.T) {
	cfg := ParseLabels(map[string]string{
		LabelEnable: "true",
		LabelType:   "django",
		LabelVolume: "/data",
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "django", cfg.Kind)
	assert.Equal(t, "/data", cfg.VolumePath)
}

func TestParseLabels_EnabledWithoutWork(t *testing.T) {
	cfg := ParseLabels(map[string]string{LabelEnable: "true"})

	assert.True(t, cfg.Enabled)
	assert.Empty(t, cfg.Kind)
	assert.Empty(t, cfg.VolumePath)
	assert.False(t, cfg.HasWork())
}

func TestParseLabels_UnknownKindKeptVerbatim(t *testing.T) {
	cfg := ParseLabels(map[string]string{
		LabelEnable: "true",
		LabelType:   "mongodb",
	})

	assert.Equal(t, "mongodb", cfg.Kind)
}

func TestParseLabels_Notify(t *testing.T) {
	cfg := ParseLabels(map[string]string{
		LabelEnable: "true",
		LabelVolume: "/var/lib/data",
		LabelNotify: "ops, oncall,,",
	})

	assert.Equal(t, []string{"ops", "oncall"}, cfg.Notify)
}
