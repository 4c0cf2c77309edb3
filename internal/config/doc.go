// Package config loads Apo configuration from YAML files.
//
// Configuration supports environment variable expansion using ${VAR_NAME}
// syntax anywhere in the file. A missing config file is not an error; the
// defaults from Default() apply so the server can run with no setup.
//
// Sections: server (http_addr), database (path), memory (recent_limit),
// logging (level, format).
package config
