package segment

// Bigrams joins each pair of adjacent tokens, with a single space between
// them when withSeparator is set. A single token is returned unchanged and an
// empty sequence yields [""], so every document resolves to at least one
// feature string.
func Bigrams(tokens []string, withSeparator bool) []string {
	switch len(tokens) {
	case 0:
		return []string{""}
	case 1:
		return []string{tokens[0]}
	}
	out := make([]string, 0, len(tokens)-1)
	for i := 0; i < len(tokens)-1; i++ {
		if withSeparator {
			out = append(out, tokens[i]+" "+tokens[i+1])
		} else {
			out = append(out, tokens[i]+tokens[i+1])
		}
	}
	return out
}
