// Package config provides configuration loading, validation, and hot reload
// for the trace query service.
//
// Configuration is YAML-based with environment variable overrides. The
// loading sequence is: parse file, apply defaults, apply LANGFUSE_* env
// overrides, validate.
//
// # Basic Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Hot Reload
//
// The query section (timeout and warning suppression) can be reloaded at
// runtime by watching the configuration file:
//
//	watcher := config.NewWatcher("config.yaml", logger)
//	go watcher.Watch(ctx, func() error {
//	    cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//	    if err != nil {
//	        return err
//	    }
//	    srv.UpdateQueryConfig(cfg.Query)
//	    return nil
//	})
package config
