package runtime

import (
	"bufio"
	"embed"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

//go:embed censored/*
var censoredFolder embed.FS

// LoadCensoredWords reads every embedded word list, one word per line.
// Empty lines and '#' comments are skipped, duplicates across files removed.
func LoadCensoredWords() ([]string, error) {
	entries, err := censoredFolder.ReadDir("censored")
	if err != nil {
		return nil, fmt.Errorf("reading censored folder: %w", err)
	}

	var words []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		file, err := censoredFolder.Open("censored/" + entry.Name())
		if err != nil {
			return nil, err
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			words = append(words, strings.ToLower(line))
		}
		if err := scanner.Err(); err != nil {
			_ = file.Close()
			return nil, err
		}
		_ = file.Close()
	}

	return lo.Uniq(words), nil
}
