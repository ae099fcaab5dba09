package registration

import "context"

// Register is the single write path into the store: validate the raw
// input, then run the repository's atomic duplicate-checked insert. On
// any failure nothing is persisted and the typed error says why.
func Register(ctx context.Context, in Input, repo Repository) (Registration, error) {
	reg, err := Validate(in)
	if err != nil {
		return Registration{}, err
	}

	return repo.CreateRegistration(ctx, reg)
}
