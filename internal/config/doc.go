// Package config provides the configuration system for editsys.
//
// Settings come from three sources, higher sources overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← EDITSYS_HISTORY_LIMIT=100
//	├─────────────────────────────┤
//	│  2. Configuration File      │  ← editsys.toml or editsys.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The sources are merged as generic maps by the loader sub-package and then
// decoded into a Config. Keys that no section declares are rejected.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.DefaultPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.History.Limit)
//
// # Configuration Files
//
// TOML is the primary format. Files ending in .yaml or .yml are read as YAML:
//
//	# editsys.toml
//	[log]
//	level = "debug"
//	format = "json"
//
//	[history]
//	limit = 200
//
//	[script]
//	timeout = "30s"
//
//	[report]
//	format = "text"
//
// # Environment Variables
//
// EDITSYS_SECTION_KEY sets section.key, so EDITSYS_REPORT_PRETTY=false sets
// report.pretty. EDITSYS_LOG is shorthand for log.level.
//
// # Error Handling
//
//   - *loader.ParseError: a file could not be parsed
//   - ErrUnknownSetting: a source set a key no section declares
//   - ValidationErrors: one or more settings hold unusable values; each
//     element is a *ValidationError and matches ErrValidationFailed
package config
