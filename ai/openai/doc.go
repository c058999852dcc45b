// Package openai implements the ai capability interfaces over
// OpenAI-compatible chat APIs (OpenAI, Ollama, vLLM, LocalAI) via langchaingo.
package openai
