package propsource

import (
	"strings"

	"github.com/byte4ever/layout_designer/properties"
)

// decodeStamps parses "KEY VALUE" lines with the first space as
// delimiter. Lines without a space are silently skipped.
func decodeStamps(content []byte) []properties.Entry {
	var entries []properties.Entry

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSuffix(line, "\r")

		parts := strings.SplitN(line, " ", 2)
		if len(parts) == 2 {
			entries = append(entries, properties.Entry{
				Name:  parts[0],
				Value: parts[1],
			})
		}
	}

	return entries
}

func encodeStamps(props []properties.Property) []byte {
	var sb strings.Builder

	for _, pr := range props {
		sb.WriteString(pr.Name)
		sb.WriteByte(' ')
		sb.WriteString(
			strings.ReplaceAll(properties.Text(pr.Value), "\n", " "),
		)
		sb.WriteByte('\n')
	}

	return []byte(sb.String())
}
