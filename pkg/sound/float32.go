package sound

// ResampleFloat32 resamples with linear interpolation.
func ResampleFloat32(input []float32, inputRate, outputRate int) []float32 {
	if len(input) == 0 || inputRate <= 0 || outputRate <= 0 {
		return nil
	}
	if inputRate == outputRate {
		return append([]float32(nil), input...)
	}

	ratio := float64(inputRate) / float64(outputRate)
	outputLength := int(float64(len(input)) / ratio)
	if outputLength == 0 {
		return nil
	}
	output := make([]float32, outputLength)

	for i := 0; i < outputLength-1; i++ {
		pos := float64(i) * ratio
		indexBefore := int(pos)
		indexAfter := indexBefore + 1
		if indexAfter >= len(input) {
			indexAfter = len(input) - 1
		}
		frac := pos - float64(indexBefore)
		output[i] = float32((1-frac)*float64(input[indexBefore]) + frac*float64(input[indexAfter]))
	}
	output[outputLength-1] = input[len(input)-1]

	return output
}

// DownmixFloat32 averages interleaved channels into a mono signal.
func DownmixFloat32(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	output := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[i*channels+ch]
		}
		output[i] = sum / float32(channels)
	}
	return output
}
