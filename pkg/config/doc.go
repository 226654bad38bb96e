// Package config loads the ECU configuration from YAML.
//
// A configuration file looks like:
//
//	version: "1.0"
//	profile: 12v
//	voltmon:
//	  threshold_under_mv: 8000
//	  threshold_over_mv: 13000
//	  hysteresis_mv: 500
//	  activation_time_ms: 500
//	  deactivation_time_ms: 500
//	  task_period_ms: 10
//	diag:
//	  node_address: 0x00
//	  dids: [0xF308, 0xF309, 0xF30A]
//	log:
//	  level: info
//	  protocol_log: ecu.elog
//	  samples: false
//
// Every field is optional. Missing fields keep the value of the named
// profile, or the built-in defaults when no profile is given.
package config
