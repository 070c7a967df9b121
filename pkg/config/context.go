package config

// MergeContext folds the given context layers left to right into a fresh map.
// Later layers shallow-overwrite keys from earlier ones; non-overlapping keys
// union. Values are never merged recursively: a key present in two layers is
// fully replaced. Nil layers contribute nothing. The inputs are not modified.
func MergeContext(layers ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}
