package consumer

import "github.com/MKhiriev/httpbridge/internal/logger"

// FaultReporter receives consumer-side failures that were converted into
// error responses: handler errors and continuation expiries. The routing
// layer above the bridge supplies its own implementation; the default logs.
type FaultReporter interface {
	Report(err error)
}

// FaultReporterFunc adapts a plain function to the FaultReporter interface.
type FaultReporterFunc func(err error)

func (f FaultReporterFunc) Report(err error) { f(err) }

type logFaultReporter struct {
	log *logger.Logger
}

func (r *logFaultReporter) Report(err error) {
	r.log.Error().Err(err).Msg("consumer fault")
}
