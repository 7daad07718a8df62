// Package bootstrap runs an application: it applies config defaults,
// initialises the logger, starts registered components, prints a startup
// summary and shuts everything down on SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(server.NewComponent(srv))
//	return app.Run(ctx)
package bootstrap
