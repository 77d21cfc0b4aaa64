package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"devenv/internal/config"
	"devenv/internal/dependency"
	"devenv/pkg/logging"

	"gopkg.in/yaml.v3"
)

// EntityType is the config.Storage directory holding custom templates.
const EntityType = "tools"

// Store persists custom templates and serves the merged catalog.
type Store struct {
	storage *config.Storage
}

// NewStore creates a Store on top of storage.
func NewStore(storage *config.Storage) *Store {
	return &Store{storage: storage}
}

// Dir returns the directory custom templates are stored in.
func (s *Store) Dir() string {
	return s.storage.Dir(EntityType)
}

// LoadCustom reads every custom template. Files that cannot be parsed or
// fail validation are skipped and reported together in a
// *config.ConfigurationErrorCollection next to the usable templates.
func (s *Store) LoadCustom() ([]ToolTemplate, error) {
	names, err := s.storage.List(EntityType)
	if err != nil {
		return nil, err
	}

	var (
		templates []ToolTemplate
		problems  config.ConfigurationErrorCollection
	)
	for _, name := range names {
		path := filepath.Join(s.Dir(), name+".yaml")
		data, err := s.storage.Load(EntityType, name)
		if err != nil {
			problems.Add(config.NewConfigurationError(path, config.ErrorTypeIO, "cannot read custom template", err))
			continue
		}

		var t ToolTemplate
		if err := yaml.Unmarshal(data, &t); err != nil {
			problems.Add(config.NewConfigurationError(path, config.ErrorTypeParse, "malformed custom template", err))
			continue
		}
		if err := Validate(t); err != nil {
			problems.Add(config.NewConfigurationError(path, config.ErrorTypeValidation, "invalid custom template", err))
			continue
		}
		if IsBuiltin(t.ID) {
			logging.Warn("Catalog", "Custom template %s reuses built-in id %s and is ignored", path, t.ID)
			continue
		}
		templates = append(templates, t)
	}

	logging.Debug("Catalog", "Loaded %d custom templates from %s", len(templates), s.Dir())
	return templates, problems.ErrOrNil()
}

// Templates returns built-in templates followed by valid custom ones.
// Broken custom files are logged and skipped.
func (s *Store) Templates() ([]ToolTemplate, error) {
	customs, err := s.LoadCustom()
	if err != nil {
		var problems *config.ConfigurationErrorCollection
		if !errors.As(err, &problems) {
			return nil, err
		}
		for _, p := range problems.Errors {
			logging.Warn("Catalog", "Skipping custom template: %s", p.Error())
		}
	}
	return Merge(Builtins(), customs), nil
}

// Get returns the built-in or custom template with id.
func (s *Store) Get(id string) (ToolTemplate, error) {
	templates, err := s.Templates()
	if err != nil {
		return ToolTemplate{}, err
	}
	if t, ok := Find(templates, id); ok {
		return t, nil
	}
	return ToolTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

// Save validates t and writes it as <id>.yaml. Built-in ids are rejected.
func (s *Store) Save(t ToolTemplate) error {
	if err := ValidateCustom(t); err != nil {
		return err
	}
	data, err := yaml.Marshal(&t)
	if err != nil {
		return fmt.Errorf("failed to encode template %s: %w", t.ID, err)
	}
	if err := s.storage.Save(EntityType, t.ID, data); err != nil {
		return err
	}
	logging.Info("Catalog", "Saved custom template %s", t.ID)
	return nil
}

// Delete removes the custom template id. Built-in ids are rejected.
func (s *Store) Delete(id string) error {
	if IsBuiltin(id) {
		return fmt.Errorf("%w: %s", ErrBuiltinTemplate, id)
	}
	if err := s.storage.Delete(EntityType, id); err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
		}
		return err
	}
	logging.Info("Catalog", "Deleted custom template %s", id)
	return nil
}

// Catalog implements dependency.CatalogProvider.
func (s *Store) Catalog(ctx context.Context) (*dependency.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	templates, err := s.Templates()
	if err != nil {
		return nil, err
	}
	return ToDependencyCatalog(templates), nil
}
