package services

import (
	"strings"
	"text/template"

	"geofacts/models"
)

const (
	funFactPromptName = "generateFunFactPrompt"
	newsPromptName    = "summarizeNewsPrompt"
)

var prompts = template.Must(template.New(funFactPromptName).Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`You are a fun fact generator. Generate one interesting fun fact about the country: {{.CountryName}}.

Consider these known facts about the country when generating the fun fact:
- Landmass: {{printf "%.0f" .CountryData.Landmass}} sq km
- Population: {{.CountryData.Population}}
- Languages: {{join .CountryData.Languages ", "}}

Fun Fact: `))

func init() {
	template.Must(prompts.New(newsPromptName).Parse(`Summarize the following news articles about {{.CountryName}}:
{{range .NewsArticles}}
Title: {{.Title}}
Description: {{.Description}}
Date: {{.Date}}
{{end}}
Provide a concise summary of the main points covered in the articles.`))
}

type funFactPromptInput struct {
	CountryName string
	CountryData models.CountryProfile
}

type newsPromptInput struct {
	CountryName  string
	NewsArticles []models.NewsArticle
}

func renderPrompt(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
