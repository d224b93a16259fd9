package sound

/*

MIT License

Copyright (c) 2024 Xbozon

*/

func ConvertInt16ToInt(input []int16) []int {
	output := make([]int, len(input))
	for i, value := range input {
		output[i] = int(value)
	}
	return output
}

// Float32ToInt16 clips to [-1, 1] and scales to 16-bit PCM.
func Float32ToInt16(input []float32) []int16 {
	output := make([]int16, len(input))
	for i, value := range input {
		switch {
		case value >= 1:
			output[i] = 32767
		case value <= -1:
			output[i] = -32768
		default:
			output[i] = int16(value * 32767)
		}
	}
	return output
}
