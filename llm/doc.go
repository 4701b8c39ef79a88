// Package llm defines the provider interface and universal request and
// response types for large language model backends. Concrete backends
// live in subpackages (currently ollama) and register through the
// generic provider registry.
package llm
