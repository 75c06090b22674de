package configuration

import "time"

type SamplingConfig struct {
	// Number of samples that make up the average
	Samples int `json:"samples"`
	// Number of leading samples that are thrown away
	Discard int `json:"discard"`
	// Attempts per logical sample before giving up
	RetriesPerSample int           `json:"retriesPerSample"`
	InterSampleDelay time.Duration `json:"interSampleDelay"`
	RetryDelay       time.Duration `json:"retryDelay"`
}
