// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

	root ("cropwise")
	├── cache ("cache-layer")
	│   └── NativeCacheService   warm on startup, periodic refresh
	└── api ("api-layer")
	    └── HTTPServerService

A failing cache refresh is restarted with backoff without touching the HTTP
server. Supervisor events are logged through sutureslog, bridged into zerolog
by logging.NewSlogLogger.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddCacheService(services.NewNativeCacheService(svc, cacheCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
