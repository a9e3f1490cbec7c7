package util

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const modeloReescritura = "gemini-2.0-flash"

// RewriteErrorKind classifies failures of the description-rewrite call so the
// handler can show distinct user-facing messages.
type RewriteErrorKind int

const (
	RewriteErrGeneric RewriteErrorKind = iota
	RewriteErrRateLimit
	RewriteErrAuth
)

// Reescritor rewrites a professional's self-description into clearer copy.
type Reescritor interface {
	Reescribir(ctx context.Context, descripcion string) (string, error)
}

var reescritor Reescritor

// SetReescritor injects the rewrite client. Nil leaves the feature disabled.
func SetReescritor(r Reescritor) {
	reescritor = r
}

// GetReescritor returns the injected rewrite client, or nil when disabled.
func GetReescritor() Reescritor {
	return reescritor
}

// GeminiReescritor calls the Gemini API once per rewrite. The API key is read
// by the genai client from the environment.
type GeminiReescritor struct {
	client *genai.Client
}

func NewGeminiReescritor(ctx context.Context, apiKey string) (*GeminiReescritor, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiReescritor{client: client}, nil
}

func (g *GeminiReescritor) Reescribir(ctx context.Context, descripcion string) (string, error) {
	prompt := "Reescribí la siguiente descripción de un profesional de oficios para un directorio local.\n" +
		"Mantené el idioma original, un tono cercano y profesional, máximo 300 caracteres.\n" +
		"Respondé SOLO con el texto reescrito, sin comillas ni explicaciones.\n\n" +
		"Descripción original: " + descripcion

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, modeloReescritura, contents, nil)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return strings.Trim(out, "\""), nil
}

// ClassifyRewriteError maps a rewrite failure to its user-facing class.
// Rate-limit (429) and auth (400/403, bad API key) errors get their own
// messages; everything else is generic.
func ClassifyRewriteError(err error) RewriteErrorKind {
	if err == nil {
		return RewriteErrGeneric
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return RewriteErrRateLimit
	case strings.Contains(msg, "403") || strings.Contains(msg, "400") ||
		strings.Contains(msg, "PERMISSION_DENIED") || strings.Contains(msg, "API key"):
		return RewriteErrAuth
	default:
		return RewriteErrGeneric
	}
}
