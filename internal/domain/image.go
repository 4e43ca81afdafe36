package domain

// DefaultImageType is assumed when a picked file's MIME type cannot be detected.
const DefaultImageType = "image/jpeg"

// Image describes a locally acquired photo pending upload with a submission.
type Image struct {
	URI  string
	Type string
	Name string
	// Size is the byte size reported by the picker; zero when unknown.
	Size int64
}
