// Package config produces the filter configuration a logger is built
// from, out of environment variables and YAML or TOML files.
//
// Nothing here touches a logger: a Config is plain data that
// logger.Builder.WithConfig applies as if the equivalent With* calls
// had been made by hand. Directive strings follow the familiar
// "level,prefix=level" form:
//
//	CATLOG=info,db=warn,db.pool=trace
//
// File form:
//
//	subsystem: com.example.app
//	level: info
//	categories:
//	  - prefix: db
//	    level: warn
package config
