package extractor

import "strings"

// interpolationEnd returns the offset of the "}}" that closes an interpolation body starting
// at from, or -1 if none occurs before limit. Quoted strings inside the body are skipped, so
// a "}}" inside '...' does not end it.
func interpolationEnd(s string, from, limit int) int {
	var quote byte
	for i := from; i < limit; i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '}' && i+1 < limit && s[i+1] == '}':
			return i
		}
	}
	return -1
}

// maskInterpolations returns src with the body of every {{ }} interpolation outside <script>
// and <style> blocks blanked to spaces. Byte offsets are unchanged, so the markup grammar never
// sees expression operators such as < or && while node spans still index src.
func maskInterpolations(src string) []byte {
	out := []byte(src)
	for i := 0; i < len(src); i++ {
		if src[i] == '<' {
			if skip := rawBlockEnd(src, i); skip > i {
				i = skip - 1
				continue
			}
		}
		if src[i] != '{' || i+1 >= len(src) || src[i+1] != '{' {
			continue
		}
		body := i + 2
		end := interpolationEnd(src, body, len(src))
		if end < 0 {
			break
		}
		for j := body; j < end; j++ {
			if out[j] != '\n' {
				out[j] = ' '
			}
		}
		i = end + 1
	}
	return out
}

// rawBlockEnd returns the offset just past the closing tag of a <script> or <style> element
// opening at i, or i when there is none.
func rawBlockEnd(src string, i int) int {
	for _, tag := range []string{"script", "style"} {
		open := "<" + tag
		if !hasPrefixFold(src[i:], open) {
			continue
		}
		closing := indexFold(src, "</"+tag, i+len(open))
		if closing < 0 {
			return len(src)
		}
		if gt := strings.IndexByte(src[closing:], '>'); gt >= 0 {
			return closing + gt + 1
		}
		return len(src)
	}
	return i
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func indexFold(s, sub string, from int) int {
	for i := from; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
