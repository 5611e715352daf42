package storage

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

type testSpec struct {
	err error
}

func (s *testSpec) Validate() error { return s.err }

func TestAsset_Validate(t *testing.T) {
	ok := &testSpec{}
	tests := map[string]struct {
		version uint
		id      string
		spec    *testSpec
		expErrs []string
	}{
		"fish":             {version: 1, id: "sardine", spec: ok},
		"separators":       {version: 1, id: "electric_eel-2", spec: ok},
		"no version":       {id: "sardine", spec: ok, expErrs: []string{"version must be set"}},
		"future version":   {version: 2, id: "sardine", spec: ok, expErrs: []string{"version 2 is newer than supported version 1"}},
		"no id":            {version: 1, spec: ok, expErrs: []string{"id must be set"}},
		"capitals":         {version: 1, id: "Sardine", spec: ok, expErrs: []string{"id must be lowercase alphanumeric"}},
		"space":            {version: 1, id: "king crab", spec: ok, expErrs: []string{"id must be lowercase alphanumeric"}},
		"path traversal":   {version: 1, id: "../etc", spec: ok, expErrs: []string{"id must be lowercase alphanumeric"}},
		"spec rejected":    {version: 1, id: "sardine", spec: &testSpec{err: errors.New("price must be positive")}, expErrs: []string{"price must be positive"}},
		"everything wrong": {spec: &testSpec{err: errors.New("rarity unknown")}, expErrs: []string{"version must be set", "id must be set", "rarity unknown"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := Asset[*testSpec]{Version: tt.version, Identifier: tt.id, Spec: tt.spec}
			err := a.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			for _, exp := range tt.expErrs {
				testutil.AssertErrorContains(t, err, exp)
			}
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	tests := map[string]struct {
		id  string
		exp bool
	}{
		"name":       {id: "ana", exp: true},
		"digits":     {id: "ana42", exp: true},
		"underscore": {id: "big_ana", exp: true},
		"empty":      {id: "", exp: false},
		"uppercase":  {id: "Ana", exp: false},
		"dot":        {id: "ana.b", exp: false},
		"slash":      {id: "a/b", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "valid", ValidIdentifier(tt.id), tt.exp)
		})
	}
}
