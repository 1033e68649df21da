package model

import "time"

// DefaultPhoto is the placeholder shown before any upload.
const DefaultPhoto = "/images/avatars/1.png"

// MaritalStatus drives the spouse section.
type MaritalStatus string

const (
	Unmarried MaritalStatus = "unmarried"
	Married   MaritalStatus = "married"
)

// Valid reports whether s is one of the known statuses.
func (s MaritalStatus) Valid() bool {
	return s == Unmarried || s == Married
}

// FormState holds the top-level person fields.
type FormState struct {
	Name          string        `json:"name" yaml:"name" validate:"required"`
	Email         string        `json:"email" yaml:"email" validate:"required,email"`
	MaritalStatus MaritalStatus `json:"maritalStatus" yaml:"maritalStatus" validate:"required,oneof=unmarried married"`
	BirthDate     *time.Time    `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	PhotoRef      string        `json:"photoRef" yaml:"photoRef"`
}

// Spouse mirrors the person subset of FormState. No validation tags: the
// spouse section is not validated.
type Spouse struct {
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	BirthDate *time.Time `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	PhotoRef  string     `json:"photoRef" yaml:"photoRef"`
}

// ChildRecord is one repeatable sub-record. ID is assigned on creation and
// survives removals of other records.
type ChildRecord struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	SchoolName  string     `json:"schoolName" yaml:"schoolName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	PhotoRef    string     `json:"photoRef" yaml:"photoRef"`
	Email       string     `json:"email" yaml:"email"`
}

// Payload is what a submission sink receives. Spouse is set only while the
// spouse section is visible.
type Payload struct {
	Name          string        `json:"name" yaml:"name"`
	Email         string        `json:"email" yaml:"email"`
	MaritalStatus MaritalStatus `json:"maritalStatus" yaml:"maritalStatus"`
	BirthDate     *time.Time    `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	PhotoRef      string        `json:"photoRef" yaml:"photoRef"`
	Spouse        *Spouse       `json:"spouse,omitempty" yaml:"spouse,omitempty"`
	Children      []ChildRecord `json:"children" yaml:"children"`
}

// State returns the FormState part of the payload.
func (p Payload) State() FormState {
	return FormState{
		Name:          p.Name,
		Email:         p.Email,
		MaritalStatus: p.MaritalStatus,
		BirthDate:     p.BirthDate,
		PhotoRef:      p.PhotoRef,
	}
}
