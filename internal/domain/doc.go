// Package domain contains the core entities of the vocabulary learning
// application: users and their flashcards. Entities validate themselves
// and carry no persistence or transport concerns; the spaced repetition
// arithmetic lives in the srs subpackage and progress aggregation in the
// progress subpackage.
package domain
