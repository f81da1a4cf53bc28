package config

import "strings"

// Labels read from each container's metadata
const (
	// LabelEnable opts a container into backup processing when set to
	// "true" (case-insensitive). Any other value skips the container.
	LabelEnable = "DCBAK"

	// LabelType selects the dump strategy ("mysql" or "django").
	// Other or absent values run no dump.
	LabelType = "DCBAK-TYPE"

	// LabelVolume names an in-container path to archive as a tar stream.
	// Independent of LabelType; both backups may run for one container.
	LabelVolume = "DCBAK-VOLUME"

	// LabelNotify is a comma-separated list of configured notification
	// provider names to inform about this container's job results.
	LabelNotify = "DCBAK-NOTIFY"
)

// ContainerBackupConfig is the backup configuration derived from one
// container's labels.
type ContainerBackupConfig struct {
	Enabled    bool
	Kind       string   // dump strategy name, "" when no dump is requested
	VolumePath string   // in-container path to archive, "" when absent
	Notify     []string // notification provider names
}

// HasWork reports whether any backup job would run for this configuration.
func (c ContainerBackupConfig) HasWork() bool {
	return c.Enabled && (c.Kind != "" || c.VolumePath != "")
}

// ParseLabels derives a ContainerBackupConfig from a raw label mapping.
// Pure function; never fails. Unknown dump kinds are kept verbatim so the
// caller can warn about them.
func ParseLabels(labels map[string]string) ContainerBackupConfig {
	cfg := ContainerBackupConfig{
		Enabled: strings.EqualFold(labels[LabelEnable], "true"),
	}

	if !cfg.Enabled {
		return cfg
	}

	cfg.Kind = strings.TrimSpace(labels[LabelType])
	cfg.VolumePath = strings.TrimSpace(labels[LabelVolume])
	cfg.Notify = splitList(labels[LabelNotify])

	return cfg
}

// splitList parses a comma-separated label value
func splitList(val string) []string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(val, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
