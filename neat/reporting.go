package neat

// Reporter receives a summary after every generation transition.
type Reporter interface {
	GenerationEnd(stats GenerationStats)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(stats GenerationStats)

// GenerationEnd calls f(stats).
func (f ReporterFunc) GenerationEnd(stats GenerationStats) {
	f(stats)
}
