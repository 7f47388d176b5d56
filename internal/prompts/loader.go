// Package prompts embeds the LLM prompt catalogs. Prompts live in JSON
// files, one catalog per consumer, keyed by prompt name. Catalogs are
// named by typed File constants so callers cannot ask for a file that
// does not ship with the binary.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// File identifies one embedded prompt catalog.
type File string

// The embedded catalogs.
const (
	Rewriting  File = "rewriting.json"
	Extraction File = "extraction.json"
	Assistant  File = "assistant.json"
)

//go:embed *.json
var promptFiles embed.FS

// Catalogs are parsed once and cached; ClearCache forces a reload.
var (
	cache   = make(map[File]map[string]string)
	cacheMu sync.RWMutex
)

// Get returns the named prompt from a catalog.
func Get(file File, key string) (string, error) {
	catalog, err := loadCatalog(file)
	if err != nil {
		return "", err
	}

	prompt, ok := catalog[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return prompt, nil
}

// MustGet returns the named prompt, panicking when it is missing. Catalogs
// ship with the binary, so a miss is a programming error.
func MustGet(file File, key string) string {
	prompt, err := Get(file, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

func loadCatalog(file File) (map[string]string, error) {
	cacheMu.RLock()
	catalog, ok := cache[file]
	cacheMu.RUnlock()
	if ok {
		return catalog, nil
	}

	data, err := promptFiles.ReadFile(string(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}

	cacheMu.Lock()
	cache[file] = catalog
	cacheMu.Unlock()

	return catalog, nil
}

// ClearCache drops the parsed catalogs. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[File]map[string]string)
	cacheMu.Unlock()
}

// List returns the prompt keys of a catalog, sorted.
func List(file File) ([]string, error) {
	catalog, err := loadCatalog(file)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
