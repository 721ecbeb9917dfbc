// Package health provides readiness and version endpoints for the gateway.
//
// The liveness endpoint (/health) is served by the gateway handlers because
// its body is fixed; this package covers the checks behind /ready:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("temp_dir", health.TempDirCheck(cfg.Convert.TempDir))
//	checker.RegisterCheck("metrics", health.GathererCheck(collector.Registry()))
//
//	router.Get("/ready", checker.ReadinessHandler())
//	router.Get("/version", health.VersionHandler(version, commit, buildTime))
//
// Checks run concurrently and each is bounded by the checker's timeout.
package health
