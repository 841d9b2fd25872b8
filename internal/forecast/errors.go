package forecast

// ProviderError is the failure a provider reports for a fetch: a transport
// error, a non-success upstream status, or a response the provider could not
// understand. The underlying cause stays inspectable through Unwrap.
type ProviderError struct {
	Msg string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AggregationError wraps the first provider failure observed during a fan-out.
// It is the only error kind the aggregator surfaces.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return "error while fetching forecast: " + e.Err.Error()
}

func (e *AggregationError) Unwrap() error { return e.Err }
