package typescript

import "strings"

// JSDoc renders doc text as a JSDoc block at the given indent, followed by a
// newline. Single lines use the compact `/** text */` form. Empty text
// renders nothing.
//
//	/**
//	 * Line one.
//	 *
//	 * Line three.
//	 */
func JSDoc(text, indent string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "*/", `*\/`)

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return indent + "/** " + lines[0] + " */\n"
	}

	var sb strings.Builder
	sb.WriteString(indent + "/**\n")
	for _, line := range lines {
		if line == "" {
			sb.WriteString(indent + " *\n")
			continue
		}
		sb.WriteString(indent + " * " + line + "\n")
	}
	sb.WriteString(indent + " */\n")
	return sb.String()
}
