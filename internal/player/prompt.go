package player

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var ErrTooManyTries = errors.New("too many tries")

// promptValidator accepts an answer or returns the message explaining why
// not.
type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

// WithMaxTries gives up with ErrTooManyTries after n rejected answers.
func WithMaxTries(n int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = n
	}
}

// Prompt writes prompt and reads one trimmed line from br, asking again
// until the validator accepts it.
func Prompt(w io.Writer, br *bufio.Reader, prompt string, opts ...promptOption) (string, error) {
	cfg := &promptConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	for rejected := 0; ; {
		if _, err := io.WriteString(w, prompt); err != nil {
			return "", err
		}
		answer, err := br.ReadString('\n')
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)

		if cfg.validator == nil {
			return answer, nil
		}
		ok, why := cfg.validator(answer)
		if ok {
			return answer, nil
		}
		if _, err := io.WriteString(w, why); err != nil {
			return "", err
		}
		rejected++
		if cfg.tries > 0 && rejected >= cfg.tries {
			return "", ErrTooManyTries
		}
	}
}

var yesNo = map[string]bool{
	"y":   true,
	"yes": true,
	"n":   false,
	"no":  false,
}

// PromptYN asks until the answer is some form of yes or no.
func PromptYN(w io.Writer, br *bufio.Reader, prompt string) (bool, error) {
	answer, err := Prompt(w, br, prompt, WithValidator(func(s string) (bool, string) {
		if _, ok := yesNo[strings.ToLower(s)]; ok {
			return true, ""
		}
		return false, "Enter 'yes' or 'no'.\n"
	}))
	if err != nil {
		return false, err
	}
	return yesNo[strings.ToLower(answer)], nil
}
