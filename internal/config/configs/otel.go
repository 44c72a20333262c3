package configs

// OTel configures trace export. Tracing is off while Endpoint is empty.
type OTel struct {
	// Endpoint is the OTLP/HTTP collector URL, e.g. http://localhost:4318.
	Endpoint    string  `env:"ENDPOINT"`
	ServiceName string  `env:"SERVICE_NAME" envDefault:"crowdfunding-ledger"`
	SampleRatio float64 `env:"SAMPLE_RATIO" envDefault:"1"`
}
