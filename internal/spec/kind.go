// Package spec tracks specification fragments: the classifier mapping
// annotation keywords to fragment kinds, the 128-bit identities that
// give scattered fragments stable machine names, tagged references to
// those identities, and the synthesizer for generated item names.
package spec

import (
	"errors"
	"fmt"
)

// ErrUnknownSpecificationType reports an annotation keyword outside the
// closed taxonomy. The offending fragment is rejected; siblings continue.
var ErrUnknownSpecificationType = errors.New("unknown specification type")

// Kind classifies a specification fragment.
type Kind int

const (
	Precondition Kind = iota
	Postcondition
	Invariant
	Predicate
)

// KindFromKeyword maps an annotation keyword to its fragment kind. The
// grammar is exactly requires | ensures | invariant | predicate, case
// sensitive, no aliases.
func KindFromKeyword(token string) (Kind, error) {
	switch token {
	case "requires":
		return Precondition, nil
	case "ensures":
		return Postcondition, nil
	case "invariant":
		return Invariant, nil
	case "predicate":
		return Predicate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpecificationType, token)
	}
}

// Keyword returns the annotation keyword the kind was classified from.
func (k Kind) Keyword() string {
	switch k {
	case Precondition:
		return "requires"
	case Postcondition:
		return "ensures"
	case Invariant:
		return "invariant"
	case Predicate:
		return "predicate"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) String() string {
	switch k {
	case Precondition:
		return "precondition"
	case Postcondition:
		return "postcondition"
	case Invariant:
		return "invariant"
	case Predicate:
		return "predicate"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
