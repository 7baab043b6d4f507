package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/storage"
)

type StorageConfig struct {
	Archetypes AssetConfig[*game.Archetype] `json:"archetypes"`
	Routes     AssetConfig[*ai.Route]       `json:"routes"`
	Spawns     AssetConfig[*game.Spawn]     `json:"spawns"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	archetypes, err := c.Archetypes.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating archetype store: %w", err)
	}
	routes, err := c.Routes.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating route store: %w", err)
	}
	spawns, err := c.Spawns.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating spawn store: %w", err)
	}

	dict := &game.Dictionary{
		Archetypes: archetypes,
		Routes:     routes,
		Spawns:     spawns,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Archetypes.Validate("archetypes"))
	el.Add(c.Routes.Validate("routes"))
	el.Add(c.Spawns.Validate("spawns"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
