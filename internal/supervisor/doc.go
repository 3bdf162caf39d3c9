// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

/*
Package supervisor provides process supervision for ShopSense using suture v4.

The tree groups long-running services into layers that restart
independently:

	RootSupervisor ("shopsense")
	├── DataSupervisor ("data-layer")
	│   └── CacheSweepService (memory similarity cache only)
	├── RecommendSupervisor ("recommend-layer")
	│   └── SimilarityWarmService (if recommend.warm_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddRecommendService(services.NewSimilarityWarmService(engine, cfg.Recommend.WarmInterval, logger))

	errCh := tree.ServeBackground(ctx)
	<-errCh

# Failure Handling

Each service failure increments a counter that decays over FailureDecay
seconds. Past FailureThreshold the supervisor waits FailureBackoff before
the next restart. A service that returns nil is not restarted; one that
returns an error is.

The database is not supervised. DuckDB is embedded and PostgreSQL
connections are pooled by database/sql, so neither has a loop to restart.

# Debugging Shutdown Issues

UnstoppedServiceReport lists services that ignored cancellation for longer
than ShutdownTimeout.
*/
package supervisor
