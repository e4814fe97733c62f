package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# nfino-trader configuration

[trading]
# Starting balances for each session.
initial_fiat = 0.0
initial_tokens = 0.0
initial_virtual = 0.0
# Fixed NXO amount of the daily login reward.
daily_reward_tokens = 10.0
# Virtual units granted per NXO token on conversion.
token_conversion_rate = 1000.0

[feed]
# WebSocket URL of the tick broadcast server. Leave empty to use the
# built-in simulator.
url = ""
interval = "1s"
reconnect_base_delay = "1s"
reconnect_max_delay = "30s"

[notifications]
enabled = true
# all, alerts_only, errors_only
level = "all"

[notifications.webhook]
enabled = false
url = ""

[ui]
color_enabled = true
time_format = "15:04:05"

[logging]
level = "info"
console = false
file = true
`

// writeTemplate writes the default config.toml when none exists, so users
// have a file to edit on first run.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
