package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

// AssetVersion is the newest envelope layout this build reads and the one
// it writes.
const AssetVersion = 1

var identifierPattern = regexp.MustCompile(`^[a-z0-9_-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope around a stored record.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version" yaml:"version"`
	Identifier string `json:"id" yaml:"id"`
	Spec       T      `json:"spec" yaml:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	switch {
	case a.Version == 0:
		el.Add(fmt.Errorf("version must be set"))
	case a.Version > AssetVersion:
		el.Add(fmt.Errorf("version %d is newer than supported version %d", a.Version, AssetVersion))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier) {
		el.Add(fmt.Errorf("id must be lowercase alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// ValidIdentifier reports whether id can name a stored record.
func ValidIdentifier(id string) bool {
	return id != "" && identifierPattern.MatchString(id)
}
