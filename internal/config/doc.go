// Package config provides configuration parsing for routec.
//
// The configuration is stored in routec.json, found in the working directory
// or one of its parents. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "mode": "named",
//	  "manifest": "routes.yaml",
//	  "serve": {
//	    "host": "0.0.0.0",
//	    "port": 7070
//	  },
//	  "compiler": {
//	    "cacheSize": 1024
//	  },
//	  "telemetry": {
//	    "metricsNamespace": "routematch",
//	    "tracerName": "github.com/vango-dev/routematch"
//	  },
//	  "s3": {
//	    "region": "us-east-1",
//	    "bucket": "my-routes",
//	    "key": "prod/routes.yaml"
//	  },
//	  "logLevel": "info"
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.ServeAddress())
package config
