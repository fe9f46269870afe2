package config

import "strings"

// envReplacer maps nested keys to variable names: log.level becomes
// SCENEFILTER_LOG_LEVEL.
var envReplacer = strings.NewReplacer(".", "_")
