package pdf

// Document represents an opened PDF whose pages can be read one at a time
type Document interface {
	// PageCount returns the total number of pages
	PageCount() int

	// GetPage returns a specific page by index (0-based). Pages are built on
	// demand, so a malformed page fails here without affecting the others.
	GetPage(index int) (Page, error)

	// Backend returns the name of the library that decoded the document
	Backend() string

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single decoded page
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// Chars returns the positioned characters of the page, spaces included
	Chars() []CharObject

	// ExtractWords groups the characters into words
	ExtractWords(opts ...WordExtractionOption) []Word
}
