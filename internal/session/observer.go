package session

// Observer receives counts from session operations. observability.Metrics
// implements it with Prometheus counters.
type Observer interface {
	Extraction(source string, filled int)
	RulesFired(names []string)
}

type nopObserver struct{}

func (nopObserver) Extraction(string, int) {}
func (nopObserver) RulesFired([]string)    {}
