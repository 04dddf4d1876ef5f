package models

// Image is a generated image
type Image struct {
	// Ref is a stable reference to the asset, a provider URL or a content digest
	Ref string

	// Data is the base64 encoded image payload, empty when only a URL is available
	Data string

	// ContentType is the MIME type of Data
	ContentType string
}

// SeedImage is the shared image and prompt every player sees at the start of a round
type SeedImage struct {
	// Prompt is the text the image was generated from
	Prompt string

	// Image is the generated image
	Image *Image
}
