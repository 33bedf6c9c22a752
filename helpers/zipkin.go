package helpers

import (
	"log"
	"net/http"
	"os"

	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/middleware/http"
	httpreporter "github.com/openzipkin/zipkin-go/reporter/http"
)

// InitTracer builds the zipkin tracer, and returns a traced HTTP
// client for outbound calls plus the server middleware. A nil client
// means tracing is off and callers must fall back themselves; a
// typed nil must never be wrapped into an interface.
func InitTracer() (*zipkinhttp.Client, func(http.Handler) http.Handler) {
	passthrough := func(next http.Handler) http.Handler { return next }

	// set up a span reporter
	reporter := httpreporter.NewReporter("http://" + os.Getenv("ZIPKIN_ADDRESS") + "/api/v2/spans")

	// create our local service endpoint
	endpoint, err := zipkin.NewEndpoint("twitters", "localhost:"+os.Getenv("PORT"))
	if err != nil {
		log.Printf("unable to create local endpoint: %+v\n", err)
	}

	// initialize our tracer
	tracer, err := zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		log.Printf("unable to create tracer: %+v\n", err)
		return nil, passthrough
	}

	// create global zipkin http server middleware
	serverMiddleware := zipkinhttp.NewServerMiddleware(
		tracer, zipkinhttp.TagResponseSize(true),
	)

	// create global zipkin traced http client
	client, err := zipkinhttp.NewClient(tracer, zipkinhttp.ClientTrace(true))
	if err != nil {
		log.Printf("unable to create client: %+v\n", err)
		return nil, serverMiddleware
	}

	return client, serverMiddleware
}
