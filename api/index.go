package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	transport "hotel/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
