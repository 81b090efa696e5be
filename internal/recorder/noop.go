package recorder

// NoopRecorder is a no-op implementation used when no persistence is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDiscovery(_ *DiscoveryRecord) error { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
