package render

// Renderer writes the result of a use case to the console
type Renderer[T any] interface {
	Render(result T) error
}
