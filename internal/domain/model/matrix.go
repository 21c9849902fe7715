package model

// FeatureMatrix holds one row of feature values per client, columns in schema order.
type FeatureMatrix [][]float64

// Rows returns the number of rows.
func (m FeatureMatrix) Rows() int {
	return len(m)
}

// Clone returns a deep copy.
func (m FeatureMatrix) Clone() FeatureMatrix {
	out := make(FeatureMatrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
