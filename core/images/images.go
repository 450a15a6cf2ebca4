// Package images defines the provider-agnostic image generation result.
package images

// Image is one generated picture plus the prompt the provider actually used.
type Image struct {
	Data          []byte
	RevisedPrompt string
}
