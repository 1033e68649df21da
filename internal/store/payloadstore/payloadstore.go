package payloadstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/account/internal/model"
)

// Drafts are read as YAML (which also covers JSON); submissions are written
// as indented JSON. Dates are kept as text on disk and parsed with
// model.ParseDate so both the picker format and RFC 3339 work.

type person struct {
	Name          string `yaml:"name"`
	Email         string `yaml:"email"`
	MaritalStatus string `yaml:"maritalStatus"`
	BirthDate     string `yaml:"birthDate"`
	PhotoRef      string `yaml:"photoRef"`
}

type child struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	SchoolName  string `yaml:"schoolName"`
	DateOfBirth string `yaml:"dateOfBirth"`
	PhotoRef    string `yaml:"photoRef"`
	Email       string `yaml:"email"`
}

type document struct {
	person   `yaml:",inline"`
	Spouse   *person `yaml:"spouse"`
	Children []child `yaml:"children"`
}

// Load reads a draft payload from path.
func Load(path string) (model.Payload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Payload{}, fmt.Errorf("read file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML or JSON draft.
func Parse(b []byte) (model.Payload, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return model.Payload{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	bd, err := model.ParseDate(doc.BirthDate)
	if err != nil {
		return model.Payload{}, fmt.Errorf("birthDate: %w", err)
	}
	p := model.Payload{
		Name:          doc.Name,
		Email:         doc.Email,
		MaritalStatus: model.MaritalStatus(doc.MaritalStatus),
		BirthDate:     bd,
		PhotoRef:      doc.PhotoRef,
		Children:      make([]model.ChildRecord, 0, len(doc.Children)),
	}
	if doc.Spouse != nil {
		sd, err := model.ParseDate(doc.Spouse.BirthDate)
		if err != nil {
			return model.Payload{}, fmt.Errorf("spouse.birthDate: %w", err)
		}
		p.Spouse = &model.Spouse{
			Name:      doc.Spouse.Name,
			Email:     doc.Spouse.Email,
			BirthDate: sd,
			PhotoRef:  doc.Spouse.PhotoRef,
		}
	}
	for i, c := range doc.Children {
		dob, err := model.ParseDate(c.DateOfBirth)
		if err != nil {
			return model.Payload{}, fmt.Errorf("children[%d].dateOfBirth: %w", i, err)
		}
		p.Children = append(p.Children, model.ChildRecord{
			ID:          c.ID,
			Name:        c.Name,
			SchoolName:  c.SchoolName,
			DateOfBirth: dob,
			PhotoRef:    c.PhotoRef,
			Email:       c.Email,
		})
	}
	return p, nil
}

// Save writes p as indented JSON, creating the parent directory.
func Save(path string, p model.Payload) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
