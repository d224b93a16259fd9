package pitch

// Autocorrelate exposes the FFT autocorrelation to the external tests.
func Autocorrelate(x []float64, lags int) []float64 {
	return newAutocorrelator(len(x)).compute(x, lags)
}
