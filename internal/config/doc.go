// Package config loads the generator configuration.
//
// Configuration is read from a YAML file, then overridden by environment
// variables (optionally seeded from a .env file), then by command-line flags.
//
// Example file:
//
//	packages:
//	  - ./internal/events/...
//	ignore:
//	  - example.com/app/graph.Node
//	  - example.com/app/vendor/...
//	containers:
//	  - example.com/app/opt.Optional
//	output: build/pii-metamodel.json
//	format: json
//	tagKey: pii
package config
