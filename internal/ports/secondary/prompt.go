package secondary

// Prompter defines the secondary port for interactive confirmation.
type Prompter interface {
	// Confirm asks a yes/no question. An error means no answer could be
	// obtained (for example, stdin is not a terminal).
	Confirm(question string) (bool, error)
}
