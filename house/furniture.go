package house

import (
	"context"
	"errors"
	"fmt"

	"github.com/caffeine-storm/isoroom/base"
)

var ErrNoFurnitureInfo = errors.New("no furniture info")

const furnitureRegistry = "furniture"

func MakeFurniture(name string) (*Furniture, error) {
	f := Furniture{Defname: name}
	if err := base.GetObject(furnitureRegistry, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func GetAllFurnitureNames() []string {
	return base.GetAllNamesInRegistry(furnitureRegistry)
}

// Loads every furniture def in dir, replacing whatever was loaded before.
func LoadAllFurnitureInDir(dir string) error {
	return base.LoadRegistryFromDir(furnitureRegistry, make(map[string]*FurnitureDef), dir, ".json")
}

type Furniture struct {
	Defname string
	*FurnitureDef
}

// All instances of the same piece of furniture have this data in common
type FurnitureDef struct {
	// Name of the object - should be unique among all furniture
	Name string

	// Footprint, in cells, when facing North or South.
	X_dim, Y_dim int

	// Facing used when a placement doesn't say otherwise.
	Default_dir Direction

	// Avatars can lie down, sit down or just stand on top of it.
	Can_lay_on   bool
	Can_sit_on   bool
	Can_stand_on bool
}

// Returns the footprint of the piece when facing dir.
func (def *FurnitureDef) Dims(dir Direction) (dx, dy int) {
	if dir.Canonical() {
		return def.X_dim, def.Y_dim
	}
	return def.Y_dim, def.X_dim
}

// The navigation value stamped under the piece. Pieces that can be stood on
// are never stamped.
func (def *FurnitureDef) Sentinel() int {
	switch {
	case def.Can_lay_on:
		return NavLayable
	case def.Can_sit_on:
		return NavSittable
	}
	return NavBlocked
}

// Looks up the def behind a piece of floor furniture. A nil def with a nil
// error means that nothing is known about it.
type FurnitureInfoSource interface {
	InfoForFurniture(ctx context.Context, f FloorFurniture) (*FurnitureDef, error)
}

// Catalog serves furniture defs out of the furniture registry.
type Catalog struct{}

var _ FurnitureInfoSource = Catalog{}

func (Catalog) InfoForFurniture(ctx context.Context, f FloorFurniture) (*FurnitureDef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	furn, err := MakeFurniture(f.Defname)
	if err != nil {
		return nil, fmt.Errorf("%w for %q: %w", ErrNoFurnitureInfo, f.Defname, err)
	}
	return furn.FurnitureDef, nil
}

// Serves defs from a map instead of the registry.
type StaticCatalog map[string]*FurnitureDef

func (sc StaticCatalog) InfoForFurniture(ctx context.Context, f FloorFurniture) (*FurnitureDef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, ok := sc[f.Defname]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrNoFurnitureInfo, f.Defname)
	}
	return def, nil
}
