// Package seed fills a database with demo content. Everything is created
// through the services, so seeded data obeys the same membership and
// validation rules as API traffic.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPassword is given to generated users.
const DefaultPassword = "password123"

// Fixture describes users, groups, posts and comments by email reference.
type Fixture struct {
	Users  []UserFixture  `yaml:"users"`
	Groups []GroupFixture `yaml:"groups"`
}

type UserFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type GroupFixture struct {
	Name    string        `yaml:"name"`
	Bio     string        `yaml:"bio"`
	Creator string        `yaml:"creator"`
	Members []string      `yaml:"members"`
	Posts   []PostFixture `yaml:"posts"`
}

type PostFixture struct {
	Author   string           `yaml:"author"`
	Title    string           `yaml:"title"`
	Content  string           `yaml:"content"`
	Comments []CommentFixture `yaml:"comments"`
}

type CommentFixture struct {
	Author string `yaml:"author"`
	Body   string `yaml:"body"`
}

// DecodeFixture reads YAML, rejecting unknown keys.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return DecodeFixture(f)
}

// Encode writes fx as YAML, e.g. to save a generated data set.
func (fx *Fixture) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fx); err != nil {
		return err
	}
	return enc.Close()
}
