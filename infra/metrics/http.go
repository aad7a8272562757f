package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/ridepool/infra/logger"
)

// ServePrometheus exposes the default registry on /metrics at the given
// port. It blocks and is meant to run in its own goroutine.
func ServePrometheus(port string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := ":" + port
	log.Infof("prometheus metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorf("prometheus server: %v", err)
	}
}
