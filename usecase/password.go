package usecase

import "github.com/sethvargo/go-password/password"

const (
	passwordLength  = 12
	passwordSymbols = "!@#$%^&*()-_=+"
)

// generatePassword returns a fresh service account password. This is the
// only moment the plaintext is observable; it is never stored or
// re-derivable afterward.
func generatePassword() (string, error) {
	gen, err := password.NewGenerator(&password.GeneratorInput{
		Symbols: passwordSymbols,
	})
	if err != nil {
		return "", err
	}
	return gen.Generate(passwordLength, 2, 2, false, true)
}
