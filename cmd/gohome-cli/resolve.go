package main

import (
	"fmt"
	"sort"
	"strings"
)

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "_", "-", "_", "__", "_")
	name = replacer.Replace(name)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return name
}

// deviceShortName strips the directory: /dev/sda -> sda.
func deviceShortName(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// resolveDevice matches input against full device ids first, then short
// names. A short name shared by several devices is an error.
func resolveDevice(input string, ids []string) (string, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	needle := normalizeName(input)
	for _, id := range sorted {
		if normalizeName(id) == needle {
			return id, nil
		}
	}

	var matches []string
	for _, id := range sorted {
		if normalizeName(deviceShortName(id)) == needle {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("device %q not found. Available: %s", input, strings.Join(sorted, ", "))
	default:
		return "", fmt.Errorf("device %q is ambiguous: %s", input, strings.Join(matches, ", "))
	}
}
