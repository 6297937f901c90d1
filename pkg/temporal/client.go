// Package temporal wraps Temporal client and worker construction so
// every binary gets the same tracing interceptors.
package temporal

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
)

type ClientConfig struct {
	HostPort  string
	Namespace string
}

func NewClient(cfg ClientConfig) (client.Client, error) {
	tracingInterceptor, err := opentelemetry.NewTracingInterceptor(opentelemetry.TracerOptions{
		Tracer: otel.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, fmt.Errorf("create tracing interceptor: %w", err)
	}

	opts := client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Interceptors: []interceptor.ClientInterceptor{
			tracingInterceptor,
		},
	}

	if opts.Namespace == "" {
		opts.Namespace = "default"
	}

	return client.Dial(opts)
}
