package synth

import (
	"embed"
	"strings"
)

//go:embed prompts/*
var promptsFS embed.FS

func getPrompt(name string, vars map[string]string) string {
	data, err := promptsFS.ReadFile("prompts/" + name + ".md")
	if err != nil {
		panic("prompt not found: " + name)
	}

	content := string(data)
	for key, value := range vars {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content
}

// BuildPrompt returns the generation prompt for a page snapshot.
func BuildPrompt(url, snapshot string) string {
	return getPrompt("generate", map[string]string{
		"url":      url,
		"elements": snapshot,
	})
}
