package expertise

import (
	"fmt"
	"strings"

	"facscope/internal/errors"
)

// AllCatalog names the synthetic catalog holding every named catalog's
// subjects.
const AllCatalog = "All"

// Catalog is a named, ordered vocabulary of subject strings.
type Catalog struct {
	Name     string
	Subjects []string
}

// DefaultCatalogs returns the built-in subject catalogs.
func DefaultCatalogs() []Catalog {
	return []Catalog{
		{
			Name: "Sem 1",
			Subjects: []string{
				"Software Engineering", "Java", "C++", "Cloud Computing", "Cybersecurity",
			},
		},
		{
			Name: "Sem 2",
			Subjects: []string{
				"Machine Learning", "Data Science", "Artificial Intelligence",
				"Deep Learning", "CNN", "Natural Language Processing",
			},
		},
		{
			Name: "Electives",
			Subjects: []string{
				"Robotics", "IoT", "Blockchain", "Mobile Application Development",
			},
		},
	}
}

// Registry maps catalog names to their subjects and derives the "All"
// catalog. Lookups are case-insensitive on the name.
type Registry struct {
	order    []string
	catalogs map[string]Catalog
	all      Catalog
}

// NewRegistry builds a registry from named catalogs. Names must be non-empty,
// unique (case-insensitively) and must not shadow the "All" catalog.
func NewRegistry(catalogs []Catalog) (*Registry, error) {
	r := &Registry{catalogs: map[string]Catalog{}}
	seen := NewSet()
	for _, c := range catalogs {
		name := strings.TrimSpace(c.Name)
		key := strings.ToLower(name)
		switch {
		case name == "":
			return nil, errors.NewValidationError("catalog", "catalog name cannot be empty")
		case key == strings.ToLower(AllCatalog):
			return nil, errors.NewValidationError("catalog", fmt.Sprintf("%q is reserved", AllCatalog))
		}
		if _, dup := r.catalogs[key]; dup {
			return nil, errors.NewValidationError("catalog", fmt.Sprintf("duplicate catalog %q", name))
		}
		subjects := make([]string, 0, len(c.Subjects))
		for _, s := range c.Subjects {
			if s = strings.TrimSpace(s); s != "" {
				subjects = append(subjects, s)
			}
		}
		r.catalogs[key] = Catalog{Name: name, Subjects: subjects}
		r.order = append(r.order, key)
		seen.Add(subjects...)
	}
	r.all = Catalog{Name: AllCatalog, Subjects: seen.Items()}
	return r, nil
}

// DefaultRegistry returns a registry over DefaultCatalogs.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCatalogs())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the catalog with the given name. An empty name selects "All".
func (r *Registry) Lookup(name string) (Catalog, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == strings.ToLower(AllCatalog) {
		return r.all, nil
	}
	c, ok := r.catalogs[key]
	if !ok {
		return Catalog{}, errors.NewValidationError("catalog",
			fmt.Sprintf("unknown catalog %q (available: %s)", name, strings.Join(r.Names(), ", ")))
	}
	return c, nil
}

// Names lists the named catalogs in registration order followed by "All".
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order)+1)
	for _, k := range r.order {
		names = append(names, r.catalogs[k].Name)
	}
	return append(names, AllCatalog)
}

// Catalogs returns the named catalogs in registration order followed by "All".
func (r *Registry) Catalogs() []Catalog {
	out := make([]Catalog, 0, len(r.order)+1)
	for _, k := range r.order {
		out = append(out, r.catalogs[k])
	}
	return append(out, r.all)
}

// Merge returns a registry where the given catalogs replace same-named
// catalogs of r and new names are appended.
func (r *Registry) Merge(extra []Catalog) (*Registry, error) {
	base := make([]Catalog, 0, len(r.order)+len(extra))
	override := map[string]Catalog{}
	for _, c := range extra {
		override[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}
	for _, k := range r.order {
		if c, ok := override[k]; ok {
			base = append(base, c)
			delete(override, k)
			continue
		}
		base = append(base, r.catalogs[k])
	}
	rest := make([]Catalog, 0, len(override))
	for _, c := range extra {
		if _, ok := override[strings.ToLower(strings.TrimSpace(c.Name))]; ok {
			rest = append(rest, c)
		}
	}
	return NewRegistry(append(base, rest...))
}
