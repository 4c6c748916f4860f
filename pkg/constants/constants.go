// Package constants defines shared constants for the Minerva screening service.
package constants

// ServiceName identifies the service in logs, traces and metrics.
const ServiceName = "minerva"

// ModelVersion is the advertised version of the screening model.
const ModelVersion = "MINERVA v2.0"

// DataSource names the corpus the screening model is described as trained on.
const DataSource = "Pitt Corpus"

// FeatureCount is the advertised number of acoustic/linguistic features.
const FeatureCount = 43

// AnalysisIDPrefix prefixes every analysis identifier.
const AnalysisIDPrefix = "MIN"

// MaxTranscriptBytes bounds the accepted transcript size.
const MaxTranscriptBytes = 64 * 1024

// ContextKey is the type used for request-scoped context values.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request identifier.
	ContextKeyRequestID ContextKey = "request_id"
	// ContextKeyTraceID carries the trace identifier when tracing is enabled.
	ContextKeyTraceID ContextKey = "trace_id"
)

// Disclaimer is shown on the dashboard footer. Minerva is a screening tool,
// not a diagnostic device.
const Disclaimer = "MINERVA is a research and screening tool, NOT a diagnostic device. " +
	"This tool analyzes speech patterns and provides risk assessments based on " +
	"machine learning models trained on clinical data. Always consult with " +
	"qualified medical professionals for diagnosis and treatment decisions."
