package problemgen

// Config controls the behavior of the Composer.
type Config struct {
	// Validators is the ordered list of constraint checks run on every
	// composed question. The first failure rejects the candidate.
	Validators []Validator

	// MaxStepAttempts bounds the draws for a single step.
	MaxStepAttempts int

	// MaxAttempts bounds the candidates tried before falling back.
	MaxAttempts int

	// RecentWindow is how many prior display strings a new question must
	// differ from.
	RecentWindow int

	// ColumnarPercent is the chance (0-100) of a columnar question when the
	// profile supports one.
	ColumnarPercent int

	// TwoStepPercent is the chance (0-100) of a two-step question when the
	// profile allows more than one operation.
	TwoStepPercent int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&RangeValidator{},
			&CarryBorrowValidator{},
			&ExpressionValidator{},
			&RepetitionValidator{},
		},
		MaxStepAttempts: 50,
		MaxAttempts:     100,
		RecentWindow:    3,
		ColumnarPercent: 50,
		TwoStepPercent:  50,
	}
}
