package metrics

// SetEventsOpenTotal sets the gauge of events currently accepting enrollments
func (m *Metrics) SetEventsOpenTotal(count int64) {
	m.safeExecute("SetEventsOpenTotal", func() {
		m.EventsOpenTotal.Set(float64(count))
	})
}
