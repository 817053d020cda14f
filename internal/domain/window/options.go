// Package window selects play-by-play actions inside the critical window.
package window

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithWindowSeconds sets the length of the final-period window.
func WithWindowSeconds(seconds int) Option {
	return func(f *Filter) {
		if seconds > 0 {
			f.windowSeconds = seconds
		}
	}
}

// WithRegulationPeriod sets the final regulation period number; later
// periods count as overtime and are included whole.
func WithRegulationPeriod(period int) Option {
	return func(f *Filter) {
		if period > 0 {
			f.regulationPeriod = period
		}
	}
}
