// Package config loads the listener configuration for solverterm.
//
// Configuration files may be TOML or YAML; the decoder is picked from the
// file extension. A missing file is not an error and yields Default().
//
//	log_level = "debug"
//	echo = false
//	highlight = ["^OPTIMAL", "SOLUTION FOUND"]
//	suppress = ['^[*+ ]\s*\d+:']
//	transcript_dir = "logs"
//	script = "filter.lua"
//	watch_script = true
//
// Relative paths are resolved against the directory of the config file.
package config
